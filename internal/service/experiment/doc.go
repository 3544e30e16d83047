// Package experiment grid-searches CUSUM parameters over repeated simulation
// rounds.
//
// Every (drift, threshold, round) unit owns its simulator, state and random
// source, so units run concurrently on a bounded errgroup. Rows are written
// into a slot per unit and returned in grid order once all units finish.
package experiment
