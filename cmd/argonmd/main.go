package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gologme/log"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/san-kum/argonmd/internal/analysis"
	"github.com/san-kum/argonmd/internal/config"
	"github.com/san-kum/argonmd/internal/experiment"
	"github.com/san-kum/argonmd/internal/md"
	"github.com/san-kum/argonmd/internal/metrics"
	"github.com/san-kum/argonmd/internal/rng"
	"github.com/san-kum/argonmd/internal/storage"
	"github.com/san-kum/argonmd/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	loglevel string

	cells       int
	scale       float64
	temperature float64
	ensemble    string
	steps       int
	sampleEvery int
	seed        int64
	workers     int
	replicas    int
	configFile  string
	preset      string
	save        bool

	// Live view
	stepsPerFrame int
	frameRate     int

	// Plot
	field string

	// RDF
	bins int

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "argonmd",
		Short: "molecular dynamics lab for Lennard-Jones argon",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = log.New(os.Stdout, "", log.Flags())
			setLogLevel(loglevel, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".argonmd", "data directory")
	rootCmd.PersistentFlags().StringVar(&loglevel, "loglevel", "info", "log level (error/warn/info/debug)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&save, "save", false, "store run results")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 5, "integration steps per frame")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored observable series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "temperature", "observable (temperature/kinetic/potential/total/pressure/momentum)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rdfCmd := &cobra.Command{
		Use:   "rdf",
		Short: "run a simulation and print the radial distribution function",
		RunE:  runRDF,
	}
	addSimFlags(rdfCmd)
	rdfCmd.Flags().IntVar(&bins, "bins", 60, "histogram bins")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure integration throughput",
		RunE:  benchSystem,
	}
	addSimFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, rdfCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cells, "cells", config.DefaultCells, "unit cells per box side")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "lattice scale")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "target temperature (K)")
	cmd.Flags().StringVar(&ensemble, "ensemble", "nvt", "ensemble (nve/nvt)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "sampling cadence in steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all CPUs)")
	cmd.Flags().IntVar(&replicas, "replicas", config.DefaultReplicas, "periodic image range per axis")
}

// buildConfig merges, in increasing priority: defaults, preset, config file,
// command-line flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	setFlag := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	setFlag("cells", func() { cfg.Cells = cells })
	setFlag("scale", func() { cfg.Scale = scale })
	setFlag("temp", func() { cfg.Temperature = temperature })
	setFlag("ensemble", func() { cfg.Ensemble = ensemble })
	setFlag("steps", func() { cfg.Steps = steps })
	setFlag("sample-every", func() { cfg.SampleEvery = sampleEvery })
	setFlag("seed", func() { cfg.Seed = seed })
	setFlag("workers", func() { cfg.Workers = workers })
	setFlag("replicas", func() { cfg.Replicas = replicas })

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	exp.AddMetric(metrics.NewTemperatureMean())
	exp.AddMetric(metrics.NewPressureMean())
	exp.AddMetric(metrics.NewEnergyDrift())
	exp.AddMetric(metrics.NewMomentumDrift())

	logger.Infof("running %d particles, %d steps, %s ensemble\n",
		exp.System().ParticleCount(), cfg.Steps, cfg.Ensemble)

	bar := pb.StartNew(cfg.Steps)
	exp.Progress = func(step, total int) { bar.Increment() }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	result, err := exp.Run(ctx)
	bar.Finish()
	if err != nil {
		return err
	}
	logger.Debugf("completed in %v\n", time.Since(start))

	sys := exp.System()
	fmt.Printf("steps:        %d\n", result.StepsTaken)
	fmt.Printf("time:         %.4f ps\n", sys.ElapsedPicoseconds())
	fmt.Printf("temperature:  %.2f K (target %.2f K)\n", sys.Temperature(), sys.TargetTemperature())
	fmt.Printf("pressure:     %.4g atm\n", sys.Pressure())
	fmt.Printf("total energy: %.6g Ha\n", sys.TotalEnergy())
	for name, value := range result.Metrics {
		fmt.Printf("%-13s %.6g\n", name+":", value)
	}

	if save {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(cfg, result)
		if err != nil {
			return err
		}
		logger.Infof("saved run %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	return viz.Run(exp.System(), stepsPerFrame, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeader([]string{"ID", "Ensemble", "Cells", "Temp (K)", "Steps", "Timestamp"})

	for _, run := range runs {
		table.Append([]string{
			run.ID,
			run.Ensemble,
			fmt.Sprintf("%d", run.Cells),
			fmt.Sprintf("%.1f", run.Temperature),
			fmt.Sprintf("%d", run.Steps),
			run.Timestamp.Format(time.RFC3339),
		})
	}
	table.Render()
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	samples, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", args[0])
	}

	series := make([]float64, len(samples))
	for i, s := range samples {
		switch field {
		case "temperature":
			series[i] = s.Temperature
		case "kinetic":
			series[i] = s.Kinetic
		case "potential":
			series[i] = s.Potential
		case "total":
			series[i] = s.Total
		case "pressure":
			series[i] = s.Pressure
		case "momentum":
			series[i] = s.Momentum
		default:
			return fmt.Errorf("unknown field %q", field)
		}
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(15),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s (%s)", field, args[0]))))
	return nil
}

func runRDF(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	bar := pb.StartNew(cfg.Steps)
	exp.Progress = func(step, total int) { bar.Increment() }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := exp.Run(ctx); err != nil {
		bar.Finish()
		return err
	}
	bar.Finish()

	sys := exp.System()
	rdf, err := analysis.ComputeRDF(sys.Positions(), sys.BoxLength(), bins, sys.BoxLength()/2)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(rdf.G,
		asciigraph.Height(15),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("g(r), r up to %.3f nm", sys.PeriodicLength()/2))))
	return nil
}

func benchSystem(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ensembleVal, err := md.ParseEnsemble(cfg.Ensemble)
	if err != nil {
		return err
	}

	sys, err := md.NewSystem(md.Config{
		Cells:       cfg.Cells,
		Scale:       cfg.Scale,
		Temperature: cfg.Temperature,
		Ensemble:    ensembleVal,
		Replicas:    cfg.Replicas,
		Workers:     cfg.Workers,
	}, rng.NewUniform(1))
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < cfg.Steps; i++ {
		if err := sys.Step(); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	n := float64(sys.ParticleCount())
	pairs := n * n * float64(cfg.Steps)
	fmt.Printf("%d steps of %d particles in %v\n", cfg.Steps, sys.ParticleCount(), elapsed)
	fmt.Printf("%.1f steps/s, %.1f ns/pair\n",
		float64(cfg.Steps)/elapsed.Seconds(), float64(elapsed.Nanoseconds())/pairs)
	return nil
}

func setLogLevel(loglevel string, logger *log.Logger) {
	levels := [...]string{"error", "warn", "info", "debug"}
	loglevel = strings.ToLower(loglevel)

	contains := func() bool {
		for _, l := range levels {
			if l == loglevel {
				return true
			}
		}
		return false
	}

	if !contains() {
		loglevel = "info"
	}

	for _, l := range levels {
		logger.EnableLevel(l)
		if l == loglevel {
			break
		}
	}
}
