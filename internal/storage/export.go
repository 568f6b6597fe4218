package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/particlesim/internal/metrics"
)

type ExportData struct {
	Meta    RunMetadata      `json:"meta"`
	Samples []metrics.Sample `json:"samples"`
}

// ExportJSON writes a stored run as one JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Samples: samples})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
