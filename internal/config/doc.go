// Package config defines experiment and service settings shared by the
// elevator-lab binaries and provides helpers to load, validate and save them
// in YAML format.
//
// Values are read from a YAML file, then overridden by environment variables
// (SIM_RUNS, SIM_ROUNDS, SIM_SEED, MIN_DETECTION_EFFECTIVENESS,
// MAX_FALSE_ALARM_RATE). The loaded Config is passed explicitly to the
// services that need it.
package config
