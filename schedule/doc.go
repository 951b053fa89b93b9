// Package schedule merges published (theoretical) stop times with real-time
// override data into the value a rider actually sees.
//
// Four independent override sources feed a resolution: trip cancellations,
// skipped-stop marks, operator-entered manual delays, and automated feed
// predictions (delay minutes and absolute updated times). They are merged by
// a fixed precedence chain: cancellation beats skip beats manual delay beats
// feed data, and a temporal gate suppresses automated data whenever the
// schedule being viewed is not today's. A manual delay is the one override
// that applies regardless of the gate.
//
// Every entry point is a pure function of its arguments plus the injected
// clock. The caller hands in a fresh Overrides snapshot per render cycle;
// nothing is retained or mutated, so concurrent resolutions are safe without
// locking. All functions are total: missing or malformed input degrades to
// the "no information" result instead of an error.
package schedule
