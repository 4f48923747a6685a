// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - validateNaNInf controls whether Set()/ingestion rejects NaN/Inf at all.
//   - allowLogZero is a narrow exception for -Inf as "log of zero" in
//     log-weight tables. Under validation, NaN and +Inf remain rejected even
//     when allowLogZero=true.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry of diagonal blocks).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultAllowLogZero permits -Inf values to represent log(0) in log-weight tables.
	//
	// IMPORTANT:
	//   - This is NOT a "dirty-data" mode.
	//   - When ValidateNaNInf is enabled, NaN and +Inf are still rejected; only -Inf
	//     is allowed by this mode.
	DefaultAllowLogZero = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and resolve them via gatherOptions.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	allowLogZero   bool    // DefaultAllowLogZero (-Inf as log-zero)
}

// WithEpsilon sets the numeric tolerance eps used by structural checks.
// Panics with a stable message when eps is negative, NaN or infinite.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation entirely.
//
// AI-Hints:
//   - Only for controlled experiments; kernels in this module re-validate
//     their inputs at the boundary anyway.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithAllowLogZero admits -Inf (log of zero probability) under validation.
// NaN and +Inf remain rejected.
func WithAllowLogZero() Option {
	return func(o *Options) { o.allowLogZero = true }
}

// defaultOptions returns the zero-configuration policy.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		allowLogZero:   DefaultAllowLogZero,
	}
}

// gatherOptions applies opts over the defaults in order (last write wins).
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// acceptValue reports whether v is admissible under the numeric policy.
func (o Options) acceptValue(v float64) bool {
	if !o.validateNaNInf {
		return true
	}
	if math.IsNaN(v) || math.IsInf(v, 1) {
		return false
	}
	if math.IsInf(v, -1) {
		return o.allowLogZero
	}

	return true
}
