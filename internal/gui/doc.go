// Package gui hosts the simulation in a raylib window.
//
// The window is the simulation area: one unit per pixel, resized with the
// window. Ticks run at a fixed interval paced from the frame loop for as long as
// the window is open, and the
// circles of the latest tick are drawn every frame.
//
// # Controls
//
//	Left mouse   - hold to spawn particles, move to push them away
//	C            - toggle colour cycling
//	P / B        - next particle colour / background
//	X            - clear all particles
//	F            - fullscreen
//	H            - hide the HUD
//	Tab, Up/Down - select and tune gravity, push and size
//	Q / Esc      - quit
package gui
