package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"q.log/tableau/config"
	"q.log/tableau/instance"
	"q.log/tableau/logging"
	"q.log/tableau/model"
	"q.log/tableau/report"
	"q.log/tableau/simplex"
	"q.log/tableau/tui"
)

var (
	version = "dev"

	errInterrupted  = errors.New("run interrupted before it finished")
	errVerification = errors.New("result does not match the reference solver")
)

type options struct {
	configPath  string
	format      string
	inputFormat string
	logLevel    string
	verbose     bool
	step        bool
	verify      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "tableau [file]",
		Short: "Solve a linear program with the two-phase simplex method",
		Long: `tableau reads a linear program and solves it with the two-phase tableau
simplex method.

The input is either the tableau text format (constraint and variable counts
followed by one row per constraint and the objective row) or, when built
with the glpk tag, an MPS file.

Exit status is 0 for an optimal solution, 2 for an infeasible problem, 3 for
an unbounded one and 1 for any other error.

Examples:
  # Solve and print the final tableau
  tableau problem.txt

  # Show the tableau after every pivot
  tableau --verbose problem.txt

  # Step through the run interactively
  tableau --step problem.txt

  # Machine readable result, checked against a reference solver
  tableau --format json --verify problem.txt`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &opts)
			if err != nil {
				return err
			}
			return solve(cmd, cfg, opts.step, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: table, plain, json or yaml")
	flags.StringVar(&opts.inputFormat, "input-format", "", "input format: auto, tableau, mps or mps-fixed")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "render the tableau after every pivot")
	flags.BoolVar(&opts.step, "step", false, "step through the run interactively")
	flags.BoolVar(&opts.verify, "verify", false, "cross-check the optimum against gonum's simplex")
	return cmd
}

// loadConfig loads the config file and environment, then applies the flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("input-format") {
		cfg.Solver.InputFormat = opts.inputFormat
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = opts.verbose
	}
	if flags.Changed("verify") {
		cfg.Solver.Verify = opts.verify
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func solve(cmd *cobra.Command, cfg *config.Config, step bool, filename string) error {
	out := cmd.OutOrStdout()

	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	t, err := instance.Load(filename, cfg.Solver.InputFormat)
	if err != nil {
		return err
	}
	log.Info("loaded problem",
		zap.String("file", filename),
		zap.Int("constraints", t.NumConstraints()),
		zap.Int("variables", t.NumReal()),
		zap.Int("slacks", t.NumSlack()))

	var reference *model.Tableau
	if cfg.Solver.Verify {
		reference = t.Clone()
	}

	human := cfg.Output.Format == report.FormatTable || cfg.Output.Format == report.FormatPlain
	driverOpts := []simplex.Option{simplex.WithLogger(log)}
	if cfg.Output.Verbose && human && !step {
		driverOpts = append(driverOpts, simplex.WithObserver(snapshotter(out, cfg.Output.Format, t, log)))
	}
	d := simplex.NewDriver(t, driverOpts...)

	if step {
		if err := runInteractive(cmd, d); err != nil {
			return err
		}
	} else if err := d.Solve(); err != nil {
		if _, ok := simplex.StatusOf(err); !ok {
			return err
		}
	}

	status := d.Status()
	log.Info("solve finished",
		zap.Stringer("status", status),
		zap.Int("iterations", d.Iterations()))

	result := report.NewResult(t, status, d.Iterations())
	if reference != nil {
		if err := verify(log, reference, status, t, result, cfg.Solver.VerifyTolerance); err != nil {
			return err
		}
	}

	if err := write(out, cfg.Output.Format, t, result); err != nil {
		return err
	}
	return status.Err()
}

// snapshotter renders the tableau after every pivot and whenever the
// artificial variables are added or removed.
func snapshotter(w io.Writer, format string, t *model.Tableau, log *zap.Logger) func(simplex.Event) {
	return func(e simplex.Event) {
		var title string
		switch e.Kind {
		case simplex.EventPivot:
			title = fmt.Sprintf("%s: pivot on row %s, %s enters", e.Phase, t.RowLabel(e.Row), t.Label(e.Column))
		case simplex.EventArtificialAdded:
			title = fmt.Sprintf("%s: added %d artificial variables", e.Phase, e.Count)
		case simplex.EventArtificialRemoved:
			title = fmt.Sprintf("%s: removed artificial variables", e.Phase)
		default:
			return
		}
		snapshot, err := report.Snapshot(format, t)
		if err != nil {
			log.Error("render snapshot", zap.String("event", e.Kind.String()), zap.Error(err))
			return
		}
		fmt.Fprintf(w, "%s\n%s\n\n", title, snapshot)
	}
}

func runInteractive(cmd *cobra.Command, d *simplex.Driver) error {
	p := tea.NewProgram(tui.New(d),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive run: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	if !d.Done() {
		return errInterrupted
	}
	return nil
}

// verify solves the reference copy with gonum and compares its outcome and
// objective with the result of the run. When gonum cannot take the problem,
// for example because its constraint rows are linearly dependent, the
// result is left without a reference value.
func verify(log *zap.Logger, reference *model.Tableau, status simplex.Status, t *model.Tableau, result *report.Result, tolerance float64) error {
	want, err := simplex.CrossCheck(reference)
	if errors.Is(err, simplex.ErrCrossCheck) {
		log.Warn("reference solver unavailable, result not verified", zap.Error(err))
		return nil
	}
	refStatus, ok := simplex.StatusOf(err)
	if !ok {
		return err
	}
	if refStatus != status {
		return fmt.Errorf("%w: status %s, reference %s", errVerification, status, refStatus)
	}
	if status != simplex.OK {
		return nil
	}

	if reference.Minimize() {
		want = -want
	}
	result.Reference = &want
	if got := t.ObjectiveValue(); math.Abs(got-want) > tolerance {
		return fmt.Errorf("%w: objective %g, reference %g", errVerification, got, want)
	}
	return nil
}

func write(w io.Writer, format string, t *model.Tableau, result *report.Result) error {
	switch format {
	case report.FormatJSON, report.FormatYAML:
		return report.Encode(w, format, result)
	}

	snapshot, err := report.Snapshot(format, t)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, snapshot)
	fmt.Fprintf(w, "status: %s after %d pivots\n", result.Status, result.Iterations)
	if result.Objective == nil {
		return nil
	}
	fmt.Fprint(w, report.Solution(t))
	if result.Reference != nil {
		fmt.Fprintf(w, "reference z: %.4f\n", *result.Reference)
	}
	return nil
}
