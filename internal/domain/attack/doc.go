// Package attack describes the attack catalog and injects attacks into a
// running simulation.
//
// A Spec is a set of kinds active over a half-open cycle window. Tampering
// kinds (ATTACK_MAX_TEMP, ATTACK_MAX_WEIGHT) rewrite the controller limits
// and persist after the window; value kinds (SURGE, BIAS, RANDOM) distort the
// temperature reading; BUTTON_ATTACK corrupts the command path.
package attack
