// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvchain/blocktri"
	"github.com/katalvlaran/lvchain/matrix"
	"github.com/katalvlaran/lvchain/plate"
)

// SolveReport is the result of `lvchain solve`.
type SolveReport struct {
	Systems []SystemReport `json:"systems"`
}

// SystemReport holds the outputs of one system.
type SystemReport struct {
	LogDet   float64       `json:"logdet"`
	X        [][]float64   `json:"x"`
	V        [][][]float64 `json:"v"`
	C        [][][]float64 `json:"c"`
	Residual *float64      `json:"residual,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve block-tridiagonal SPD systems",
		Long: `Solve every system listed in a YAML or JSON problem file:

  systems:
    - a: [[[2]], [[2]]]   # N diagonal blocks (D×D, SPD)
      b: [[[0.5]]]        # N-1 super-diagonal blocks
      y: [[1], [1]]       # N right-hand sides

Prints x, the diagonal (V) and super-diagonal (C) blocks of the inverse,
and log det for each system.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(rootOpts, args[0], check, cmd)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "also report the residual max|Mx − y|")

	return cmd
}

func runSolve(opts *RootOptions, path string, check bool, cmd *cobra.Command) error {
	formatter, ctx := opts.session(cmd)

	var problem SolveProblem
	if err := LoadProblem(path, &problem); err != nil {
		return fail(formatter, err)
	}
	n := len(problem.Systems)
	if n == 0 {
		return fail(formatter, fmt.Errorf("%s: no systems: %w", path, matrix.ErrInvalidDimensions))
	}
	formatter.VerboseLog("Loaded %d system(s) from %s", n, path)

	as := make([][]matrix.Matrix, n)
	bs := make([][]matrix.Matrix, n)
	ys := make([][][]float64, n)
	for i, s := range problem.Systems {
		a, err := blocks(fmt.Sprintf("systems[%d].a", i), s.A)
		if err != nil {
			return fail(formatter, err)
		}
		b, err := blocks(fmt.Sprintf("systems[%d].b", i), s.B)
		if err != nil {
			return fail(formatter, err)
		}
		as[i], bs[i], ys[i] = a, b, s.Y
	}

	shape := plate.Shape{n}
	A, err := plate.NewBatch(shape, as)
	if err != nil {
		return fail(formatter, err)
	}
	B, err := plate.NewBatch(shape, bs)
	if err != nil {
		return fail(formatter, err)
	}
	Y, err := plate.NewBatch(shape, ys)
	if err != nil {
		return fail(formatter, err)
	}

	res, err := blocktri.SolveBatch(ctx, A, B, Y,
		blocktri.WithWorkers(opts.Workers),
		blocktri.WithSymmetryTolerance(opts.Tolerance),
	)
	if err != nil {
		return fail(formatter, err)
	}

	report := SolveReport{Systems: make([]SystemReport, n)}
	for i := range report.Systems {
		r := res.At([]int{i})
		sr := SystemReport{LogDet: r.LogDet, X: r.X, V: rowsOf(r.V), C: rowsOf(r.C)}
		if check {
			resid, err := blocktri.Residual(as[i], bs[i], r.X, ys[i])
			if err != nil {
				return fail(formatter, err)
			}
			sr.Residual = &resid
		}
		report.Systems[i] = sr
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	writeSolveText(formatter.Writer, report)
	return nil
}

func writeSolveText(w io.Writer, report SolveReport) {
	for i, s := range report.Systems {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "system %d\n", i)
		fmt.Fprintf(w, "  logdet = %s\n", num(s.LogDet))
		for k, x := range s.X {
			fmt.Fprintf(w, "  x[%d] = %s\n", k, vec(x))
		}
		for k, v := range s.V {
			fmt.Fprintf(w, "  V[%d] = %s\n", k, mat(v))
		}
		for k, c := range s.C {
			fmt.Fprintf(w, "  C[%d] = %s\n", k, mat(c))
		}
		if s.Residual != nil {
			fmt.Fprintf(w, "  residual = %s\n", num(*s.Residual))
		}
	}
}

// rowsOf copies each matrix into nested rows for reporting.
func rowsOf(ms []*matrix.Dense) [][][]float64 {
	out := make([][][]float64, len(ms))
	for k, m := range ms {
		rows := make([][]float64, m.Rows())
		for i := range rows {
			rows[i], _ = m.Row(i)
		}
		out[k] = rows
	}
	return out
}

// mat formats a matrix as "[[a b] [c d]]".
func mat(rows [][]float64) string {
	out := "["
	for i, r := range rows {
		if i > 0 {
			out += " "
		}
		out += vec(r)
	}
	return out + "]"
}
