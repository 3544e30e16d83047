// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client wrapper for ExperimentService with
// timeouts and a helper to detect the current system actor (user@host) sent
// along with requests for the server logs.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
