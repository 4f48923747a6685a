// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvchain/matrix"
)

// SystemSpec is one block-tridiagonal system as written in a problem file.
type SystemSpec struct {
	A [][][]float64 `yaml:"a" json:"a"` // N diagonal blocks, each D rows of D
	B [][][]float64 `yaml:"b" json:"b"` // N-1 super-diagonal blocks
	Y [][]float64   `yaml:"y" json:"y"` // N right-hand-side vectors
}

// SolveProblem is the input of `lvchain solve`.
type SolveProblem struct {
	Systems []SystemSpec `yaml:"systems" json:"systems"`
}

// ChainSpec is one discrete chain as written in a problem file.
type ChainSpec struct {
	LogP0 []float64     `yaml:"logp0" json:"logp0"`
	LogP  [][][]float64 `yaml:"logp" json:"logp"`
}

// ChainProblem is the input of `lvchain fb`. With Probabilities set, the
// values are non-negative weights and are converted to logs on load.
type ChainProblem struct {
	Probabilities bool        `yaml:"probabilities" json:"probabilities"`
	Chains        []ChainSpec `yaml:"chains" json:"chains"`
}

// LoadError represents an error that occurred while loading a file.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadProblem decodes path into out, choosing the decoder by extension:
// .json uses JSON, .yaml/.yml (and anything else) uses YAML.
func LoadProblem(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("problem file not found: %s", path), Err: err}
		}
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, out)
	} else {
		err = yaml.Unmarshal(data, out)
	}
	if err != nil {
		return &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding %s: %v", path, err), Err: err}
	}
	return nil
}

// blocks converts nested rows into matrices. Each block must be rectangular.
func blocks(what string, rows [][][]float64, opts ...matrix.Option) ([]matrix.Matrix, error) {
	out := make([]matrix.Matrix, len(rows))
	for k, r := range rows {
		m, err := matrix.NewDenseFromRows(r, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, k, err)
		}
		out[k] = m
	}
	return out, nil
}
