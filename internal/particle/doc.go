// Package particle holds the data model of the simulation: 2D vectors,
// colours, particles and the ordered live set.
//
// Particles carry no behaviour of their own. Everything that moves them
// lives in package physics and is orchestrated by package sim.
package particle
