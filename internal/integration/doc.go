// Package integration holds end-to-end tests that run the experiment server
// on real listeners and talk to it through the client.
package integration
