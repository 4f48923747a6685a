// SPDX-License-Identifier: MIT

package matrix

// Test bridge (white-box): exposes the resolved numeric policy to matrix_test
// without widening the production API. Keep OptionsSnapshot in sync with the
// Options layout; the defaults test catches drift.

// PanicEpsilonInvalid_TestOnly exports the panic message to avoid magic strings in tests.
const PanicEpsilonInvalid_TestOnly = panicEpsilonInvalid

// OptionsSnapshot is a read-only copy of the internal Options fields.
type OptionsSnapshot struct {
	Eps            float64
	ValidateNaNInf bool
	AllowLogZero   bool
}

// GatherOptionsSnapshot_TestOnly resolves opts over the defaults and returns a snapshot.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{Eps: o.eps, ValidateNaNInf: o.validateNaNInf, AllowLogZero: o.allowLogZero}
}

// AcceptValue_TestOnly reports whether v passes the policy built from opts.
func AcceptValue_TestOnly(v float64, opts ...Option) bool {
	return gatherOptions(opts...).acceptValue(v)
}
