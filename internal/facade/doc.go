// Package facade owns the influence field evaluated over a facade panel grid.
//
// Responsibilities: grid construction, attractor validation, per-attractor
// falloff, summation and clamping of influence, and the mapping from
// influence to panel rotation, scale and opacity.
// Key types: Facade, Attractor, Panel, Grid.
//
// A Facade is an immutable value. AddAttractor and WithFalloff return a new
// Facade, so ComputePanels is a pure function of the value it is called on.
// Rendering, export and persistence live in sibling packages and consume
// the Panel slice; nothing in this package performs I/O.
package facade
