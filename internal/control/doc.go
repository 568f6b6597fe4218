// Package control is the input surface of the simulation.
//
// A [Surface] owns the live [sim.Params] and keeps every adjustable value
// inside its range, so the loop never has to re-validate. Hosts translate
// their own widgets and events into Surface calls:
//
//   - [Surface.SetParam] / [Surface.Adjust]: gravity, size, push force
//   - [Surface.PointerDown], [Surface.PointerMove], [Surface.PointerUp]:
//     pointer tracking and particle spawning
//   - [Surface.ToggleCycle], [Surface.NextColor], [Surface.NextBackground],
//     [Surface.ToggleFullscreen], [Surface.Clear]: commands
//   - [Surface.Tick]: one loop step with the live params
//
// # Usage
//
//	s := control.New(loop, params, cycler, time.Millisecond)
//	s.PointerDown(x, y)
//	s.SpawnDue(time.Now()) // once per frame while the button is held
//	s.Tick(renderer)
package control
