// SPDX-License-Identifier: MIT

package cli

import (
	"errors"

	"github.com/katalvlaran/lvchain/chain"
	"github.com/katalvlaran/lvchain/matrix"
)

// classify maps a kernel or load error to its CLI error code and exit code.
func classify(err error) (string, int) {
	var loadErr *LoadError
	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code, ExitCommandError
	case errors.Is(err, matrix.ErrNotPositiveDefinite):
		return ErrCodeNumeric, ExitFailure
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, matrix.ErrNaNInf),
		errors.Is(err, matrix.ErrAsymmetry),
		errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, chain.ErrNegativeWeight):
		return ErrCodeInvalid, ExitFailure
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// fail reports err through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, err error) error {
	code, exit := classify(err)
	msg := err.Error()
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		msg = loadErr.Message
	}
	_ = f.Error(code, msg, nil)
	return WrapExitError(exit, code, err)
}
