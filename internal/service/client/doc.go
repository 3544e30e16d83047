// Package client implements elevator-lab-client, the remote counterpart of
// elevator-lab.
//
// The command connects to the experiment server and either runs a grid
// search there, which the server stores, or scores a single round with fixed
// detector parameters.
package client
