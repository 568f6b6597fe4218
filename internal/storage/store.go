// Package storage persists the telemetry of headless runs, one directory
// per run holding metadata.json and telemetry.csv. Simulation state
// itself is never written.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/particlesim/internal/metrics"
)

var ErrRunNotFound = errors.New("storage: run not found")

var telemetryHeader = []string{"tick", "live", "spawned", "removed", "collisions", "energy"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Particles int                `json:"particles"`
	Ticks     int                `json:"ticks"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Gravity   float64            `json:"gravity"`
	PushForce float64            `json:"push_force"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and samples under a fresh run id and returns it. The id
// and timestamp fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	now := time.Now()
	name := meta.Name
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "telemetry.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(telemetryHeader); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Tick, 10),
			strconv.Itoa(smp.Live),
			strconv.Itoa(smp.Spawned),
			strconv.Itoa(smp.Removed),
			strconv.Itoa(smp.Collisions),
			strconv.FormatFloat(smp.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	log.Debug("saved run", "id", meta.ID, "samples", len(samples))
	return meta.ID, nil
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			log.Debug("skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTelemetry reads back the per-tick samples of a run. Malformed rows
// are skipped.
func (s *Store) LoadTelemetry(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "telemetry.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (metrics.Sample, error) {
	if len(record) != len(telemetryHeader) {
		return metrics.Sample{}, fmt.Errorf("storage: expected %d fields, got %d", len(telemetryHeader), len(record))
	}
	tick, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return metrics.Sample{}, err
	}
	ints := make([]int, 4)
	for i := range ints {
		if ints[i], err = strconv.Atoi(record[i+1]); err != nil {
			return metrics.Sample{}, err
		}
	}
	energy, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return metrics.Sample{}, err
	}
	return metrics.Sample{
		Tick:       tick,
		Live:       ints[0],
		Spawned:    ints[1],
		Removed:    ints[2],
		Collisions: ints[3],
		Energy:     energy,
	}, nil
}
