// Package lab runs a grid search locally for the elevator-lab binary.
//
// Settings come from the YAML file and environment, command line flags
// override them. The run is stored through the results repository and the
// selected rows are printed as a table.
package lab
