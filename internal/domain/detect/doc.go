// Package detect scores how well a two-sided CUSUM detector, gated by a rule
// based verifier, separates attacked cycles from normal operation.
//
// The pipeline is Cusum (statistical alarms confirmed by Verify), Group
// (collapse cycle indices into intervals so a sustained attack is one event)
// and Analyze (detection effectiveness and false-alarm rate).
package detect
