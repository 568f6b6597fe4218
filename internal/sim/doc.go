// Package sim runs the particle simulation loop.
//
// A [Loop] owns the live particle set and advances it one [Loop.Tick] at a
// time using the live [Params]:
//
//  1. sample the colour cycle when enabled
//  2. resolve every unordered pair of particles
//  3. per particle: enforce the boundary, integrate, render
//  4. drop particles whose centre left the area
//
// Hosts call Tick from their own event loop, typically paced by a [Pacer]
// at 100 ticks per second. Nothing on the tick path blocks.
//
// # Thread Safety
//
// A Loop is NOT thread-safe. The only concurrent collaborator is the
// [ColorSource], which must support a non-blocking Latest. For parallel
// headless runs use [Ensemble].
package sim
