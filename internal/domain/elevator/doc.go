// Package elevator models the two-level elevator driven by the PLC program.
//
// State is the physical and control record mutated once per scan cycle by
// Step. Observe derives the noisy sensor view of a state, and Reading is the
// immutable per-cycle record appended to a simulation trail.
package elevator
