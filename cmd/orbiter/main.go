// Command orbiter propagates two-body orbits with the universal-variable
// formulation, converts between state vectors and classical elements, and
// solves time-of-flight problems, either headless or in a terminal UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/orbiter/internal/bodies"
	"github.com/litescript/orbiter/internal/kepler"
	"github.com/litescript/orbiter/internal/logging"
	"github.com/litescript/orbiter/internal/state"
	"github.com/litescript/orbiter/internal/ui"
	"github.com/litescript/orbiter/internal/version"
)

// options holds the parsed command line.
type options struct {
	mode     string
	body     string
	mu       float64
	units    string
	r0       string
	v0       string
	rf       string
	dt       float64
	chi      float64
	elements string
	tol      float64
	maxIter  int
	steps    int
	workers  int
	jsonOut  bool
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := kepler.DefaultConfig()
	var o options

	fs := flag.NewFlagSet("orbiter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.mode, "mode", "", "Headless mode: propagate, tof, chi, elements, state, trajectory, sweep, bodies")
	fs.StringVar(&o.body, "body", "earth", "Central body name (earth, sun, jupiter)")
	fs.Float64Var(&o.mu, "mu", 0, "Gravitational parameter; overrides -body when > 0")
	fs.StringVar(&o.units, "units", "km", "Unit system for inputs and outputs (km or m)")
	fs.StringVar(&o.r0, "r0", "", "Initial position x,y,z")
	fs.StringVar(&o.v0, "v0", "", "Initial velocity vx,vy,vz")
	fs.StringVar(&o.rf, "rf", "", "Target position x,y,z (tof mode)")
	fs.Float64Var(&o.dt, "dt", 0, "Time span in seconds (propagate, trajectory)")
	fs.Float64Var(&o.chi, "chi", 0, "Universal anomaly (chi mode; sweep end point)")
	fs.StringVar(&o.elements, "elements", "", "Classical elements a,e,i,raan,argp,nu with angles in degrees (state mode)")
	fs.Float64Var(&o.tol, "tol", def.Tolerance, "Newton tolerance on the universal anomaly")
	fs.IntVar(&o.maxIter, "max-iter", def.MaxIterations, "Newton iteration cap")
	fs.IntVar(&o.steps, "steps", 10, "Number of intervals (trajectory, sweep)")
	fs.IntVar(&o.workers, "workers", 0, "Parallel workers for trajectory sampling (0 = all CPUs)")
	fs.BoolVar(&o.jsonOut, "json", false, "Write JSON instead of a text table")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *showVersion {
		o.mode = "version"
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(level)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if opts.mode == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := runTUI(opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if opts.mode == "" {
		opts.mode = "bodies"
	}

	if err := runHeadless(ctx, opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup builds the body table and propagator shared by every mode.
func setup(opts options, logger *logging.Logger) (bodies.Table, *kepler.Propagator, error) {
	units, err := bodies.ParseUnits(opts.units)
	if err != nil {
		return bodies.Table{}, nil, err
	}
	table, err := bodies.ForUnits(units)
	if err != nil {
		return bodies.Table{}, nil, err
	}
	prop, err := kepler.NewPropagator(
		kepler.Config{Tolerance: opts.tol, MaxIterations: opts.maxIter},
		kepler.WithLogger(logger.With("kepler")),
	)
	if err != nil {
		return bodies.Table{}, nil, err
	}
	return table, prop, nil
}

func runTUI(opts options, logger *logging.Logger) error {
	table, prop, err := setup(opts, logger)
	if err != nil {
		return err
	}
	logger.Debug("starting TUI v%s", version.Version)
	// Log lines would tear the alt screen.
	logger.SetOutput(io.Discard)

	history := state.NewManager(state.DefaultConfig())
	p := tea.NewProgram(ui.New(table, prop, history), tea.WithAltScreen())
	_, err = p.Run()

	logger.SetOutput(os.Stderr)
	snap := history.Snapshot()
	logger.Info("session finished: %d runs, %d failed", snap.Runs, snap.Failures)
	return err
}
