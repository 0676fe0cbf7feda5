// Package layout positions topic graph entities in a 2D frame.
//
// Entities are first placed on a circle in insertion order ([Circular]),
// then refined by a force-directed pass ([ForceDirected]) for a fixed number
// of iterations. No randomness is involved, so the same graph and
// configuration always produce the same positions.
package layout
