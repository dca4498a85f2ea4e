package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/V9S/Mindustry/logic"
	"github.com/V9S/Mindustry/world"
)

var (
	// CLI flags for the host
	seed     int64  // Seed for deterministic RNG partitions
	ticks    int    // Total host ticks to run
	logLevel string // Log verbosity level

	// CLI flags for the world
	mapWidth  int    // Grid width in tiles
	mapHeight int    // Grid height in tiles
	rulesFile string // Optional rules YAML
	headless  bool   // No display sink; draw instructions short-circuit
	netClient bool   // Non-authoritative peer; world mutations disabled

	// CLI flags for programs
	programFiles []string // Program bundle YAML paths
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mlogic",
	Short: "Deterministic logic-processor virtual machine and world host",
}

// runCmd executes the host using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run logic programs against a simulated world",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if len(programFiles) == 0 {
			logrus.Fatalf("No program files provided. Exiting.")
		}

		w := world.NewState(mapWidth, mapHeight)
		world.RegisterDefaultContent(w.Content)
		w.Headless = headless
		w.NetClient = netClient
		if rulesFile != "" {
			rules, err := world.LoadRulesFile(rulesFile)
			if err != nil {
				logrus.Fatalf("unable to read rules: %v", err)
			}
			w.Rules = rules
		}

		host := logic.NewHost(w)
		host.Seed = seed

		logrus.Infof("Starting host: %dx%d map, %d ticks, seed=%d", mapWidth, mapHeight, ticks, seed)
		startTime := time.Now()

		for _, path := range programFiles {
			bundle, err := logic.LoadProgramBundle(path)
			if err != nil {
				logrus.Fatalf("unable to load program %s: %v", path, err)
			}
			placeProcessor(w, bundle)
			if _, err := host.Install(bundle); err != nil {
				logrus.Fatalf("unable to install program %s: %v", path, err)
			}
		}

		host.Run(ticks)

		report(w, host)
		logrus.Infof("Host finished in %v.", time.Since(startTime))
	},
}

// placeProcessor puts a processor building at the bundle's position when
// the tile is free, so programs run attached the way placed processors do.
func placeProcessor(w *world.State, bundle *logic.ProgramBundle) {
	if bundle.X < 0 || bundle.Y < 0 {
		return
	}
	tile := w.Grid.Tile(bundle.X, bundle.Y)
	if tile == nil || tile.Build != nil {
		return
	}
	name := "logic-processor"
	if bundle.Privileged {
		name = "world-processor"
	}
	block, ok := w.Content.ByName(name).(*world.Block)
	if !ok {
		return
	}
	team := w.Team(bundle.Team)
	if team == nil {
		team = w.Derelict()
	}
	w.AddBuilding(block, team, bundle.X, bundle.Y)
}

// report prints the observable outputs of a run: per-processor text
// buffers, message blocks, and queued notifications.
func report(w *world.State, host *logic.Host) {
	for i, ex := range host.Executors {
		if ex.Text.Len() > 0 {
			logrus.Infof("processor %d text buffer: %s", i, ex.Text.String())
		}
	}
	for _, b := range w.Buildings() {
		if b.Block.IsMessage && b.Message != "" {
			logrus.Infof("message at (%d, %d): %s", b.TileX, b.TileY, b.Message)
		}
	}
	for _, n := range w.Notifications {
		logrus.Infof("notification: %s", n)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic RNG partitions")
	runCmd.Flags().IntVar(&ticks, "ticks", 3600, "Total host ticks to run")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&mapWidth, "width", 128, "Map width in tiles")
	runCmd.Flags().IntVar(&mapHeight, "height", 128, "Map height in tiles")
	runCmd.Flags().StringVar(&rulesFile, "rules", "", "Rules YAML file")
	runCmd.Flags().BoolVar(&headless, "headless", true, "Run without a display sink")
	runCmd.Flags().BoolVar(&netClient, "client", false, "Run as a non-authoritative peer")

	runCmd.Flags().StringSliceVar(&programFiles, "program", nil, "Program bundle YAML files")

	rootCmd.AddCommand(runCmd)
}
