// Package simulator drives the elevator controller cycle by cycle under
// noise, passenger demand and attack injection, and scores a round with the
// change detector.
package simulator
