// Package logger wraps zap for the lab binaries:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the --log-level flag,
//   - leveled helpers (InfoKV, DebugKV, ...) that read the logger from a context.
//
// Simulation rounds run concurrently, so every unit of work derives its own
// named logger from the context it was handed instead of mutating the global.
package logger
