// Package server runs the elevator-lab experiment service.
//
// It serves ExperimentService over gRPC, stores every grid run through the
// results repository and exposes the experiment counters on /metrics.
package server
