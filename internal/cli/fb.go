// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvchain/chain"
	"github.com/katalvlaran/lvchain/matrix"
	"github.com/katalvlaran/lvchain/plate"
)

// ForwardBackwardReport is the result of `lvchain fb`.
type ForwardBackwardReport struct {
	Chains     []ChainReport `json:"chains"`
	Degenerate []int         `json:"degenerate,omitempty"`
}

// ChainReport holds the posterior quantities of one chain. LogZ is null for
// a degenerate chain (Z = 0).
type ChainReport struct {
	LogZ       *float64      `json:"log_z"`
	Degenerate bool          `json:"degenerate"`
	Z0         []float64     `json:"z0"`
	ZZ         [][][]float64 `json:"zz"`
	Marginals  [][]float64   `json:"marginals"`
}

// NewForwardBackwardCommand creates the fb command.
func NewForwardBackwardCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fb <file>",
		Aliases: []string{"forward-backward"},
		Short:   "Run forward-backward on discrete chains",
		Long: `Run the scaled forward-backward recursion on every chain listed in a YAML
or JSON problem file:

  probabilities: true        # optional: values are weights, not logs
  chains:
    - logp0: [0.6, 0.4]      # D initial weights
      logp:                  # N-1 tables, D×D each
        - [[0.7, 0.3], [0.2, 0.8]]

In log mode YAML accepts -.inf for zero-probability entries. Prints the
initial marginal, the pairwise joints, the state marginals and log Z.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForwardBackward(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runForwardBackward(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter, ctx := opts.session(cmd)

	var problem ChainProblem
	if err := LoadProblem(path, &problem); err != nil {
		return fail(formatter, err)
	}
	n := len(problem.Chains)
	if n == 0 {
		return fail(formatter, fmt.Errorf("%s: no chains: %w", path, matrix.ErrInvalidDimensions))
	}
	formatter.VerboseLog("Loaded %d chain(s) from %s", n, path)

	starts := make([][]float64, n)
	tables := make([][]matrix.Matrix, n)
	for i, c := range problem.Chains {
		what := fmt.Sprintf("chains[%d].logp", i)
		if problem.Probabilities {
			P, err := blocks(what, c.LogP)
			if err != nil {
				return fail(formatter, err)
			}
			if starts[i], tables[i], err = chain.FromProbabilities(c.LogP0, P); err != nil {
				return fail(formatter, fmt.Errorf("chains[%d]: %w", i, err))
			}
			continue
		}
		logP, err := blocks(what, c.LogP, matrix.WithAllowLogZero())
		if err != nil {
			return fail(formatter, err)
		}
		starts[i], tables[i] = c.LogP0, logP
	}

	shape := plate.Shape{n}
	logp0, err := plate.NewBatch(shape, starts)
	if err != nil {
		return fail(formatter, err)
	}
	logP, err := plate.NewBatch(shape, tables)
	if err != nil {
		return fail(formatter, err)
	}

	res, err := chain.RunBatch(ctx, logp0, logP, chain.WithWorkers(opts.Workers))
	if err != nil {
		return fail(formatter, err)
	}

	report := ForwardBackwardReport{Chains: make([]ChainReport, n), Degenerate: res.Degenerate()}
	for i, r := range res.Results {
		cr := ChainReport{
			Degenerate: r.Degenerate,
			Z0:         r.Z0,
			ZZ:         rowsOf(r.ZZ),
			Marginals:  r.Marginals(),
		}
		if !r.Degenerate {
			logZ := r.LogZ
			cr.LogZ = &logZ
		}
		report.Chains[i] = cr
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	writeForwardBackwardText(formatter.Writer, report)
	return nil
}

func writeForwardBackwardText(w io.Writer, report ForwardBackwardReport) {
	for i, c := range report.Chains {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "chain %d\n", i)
		if c.Degenerate {
			fmt.Fprintln(w, "  degenerate: Z = 0")
			fmt.Fprintln(w, "  log Z = -inf")
			continue
		}
		fmt.Fprintf(w, "  log Z = %s\n", num(*c.LogZ))
		fmt.Fprintf(w, "  z0 = %s\n", vec(c.Z0))
		for k, zz := range c.ZZ {
			fmt.Fprintf(w, "  zz[%d] = %s\n", k, mat(zz))
		}
		for k, z := range c.Marginals {
			fmt.Fprintf(w, "  z[%d] = %s\n", k, vec(z))
		}
	}
	if len(report.Degenerate) > 0 {
		fmt.Fprintf(w, "\n%d degenerate chain(s): %v\n", len(report.Degenerate), report.Degenerate)
	}
}
