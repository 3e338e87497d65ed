package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"flightlog-converter/controller"
	"flightlog-converter/models"
	"flightlog-converter/services/boundary"
	"flightlog-converter/utils"
)

type options struct {
	verbose    bool
	configPath string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "convert <input-dir> <output-dir>",
		Short: "Convert ENGINE/FLIGHT/SYSTEM data-logger CSVs into per-flight unified logs",
		Long: `convert reads every *_ENGINE.CSV, *_FLIGHT.CSV and *_SYSTEM.CSV file under
<input-dir>, fuses the three streams into one row per second and writes one
log_<YYYYMMDD>_<HHMMSS>_<placeholder>.csv per power cycle into <output-dir>.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log rejected rows and per-file details")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to converter.yaml")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "optional log file path (stderr is always included)")
	return cmd
}

func run(ctx context.Context, inputDir, outputDir string, opts options) error {
	level := utils.INFO
	if opts.verbose {
		level = utils.DEBUG
	}
	logger := utils.InitLogger(level, opts.logFile)
	logger.SetLevel(level)
	logger.AddAttrs("run", uuid.NewString())

	cfg, err := utils.LoadConverterConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := requireDir(inputDir); err != nil {
		return err
	}
	if err := controller.PrepareOutputDir(outputDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	utils.L().Info("conversion started",
		"input", inputDir, "output", outputDir,
		"gomaxprocs", runtime.GOMAXPROCS(0), "pid", os.Getpid())

	//  file readers (errgroup) ──► row channel ──► FusionController
	//        │                                         │
	//   boundary.Detector                        sorted buckets
	//        │                                         │
	//        └──────────► RecordingController ◄────────┘

	// 1. Discovery
	files, err := controller.DiscoverSources(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		utils.L().Warn("no source files found", "input", inputDir)
	}

	// 2. Ingest + fusion
	progress := utils.NewProgress(os.Stderr)
	detector := boundary.NewDetector()
	ingestCtrl := controller.NewIngestController(files, cfg.Ingest, detector, progress)
	fusionCtrl := controller.NewFusionController(controller.IntervalsFromConfig(cfg.Fusion))
	fusionCtrl.Start(ctx, ingestCtrl.Out)

	ingestErr := ingestCtrl.Run(ctx)
	fusionCtrl.Wait()
	progress.Done()
	if ingestErr != nil {
		return fmt.Errorf("ingest interrupted: %w", ingestErr)
	}
	ingestCtrl.LogStats()

	// 3. Boundaries
	boundaries := detector.Boundaries(cfg.BoundaryWindow())
	utils.L().Info("flight boundaries detected", "markers", detector.Count(), "boundaries", len(boundaries))

	// 4. Transform + write
	buckets := fusionCtrl.Buckets()
	if len(buckets) == 0 {
		utils.L().Warn("no data rows in any source file", "input", inputDir)
	}
	recordCtrl, err := controller.NewRecordingController(outputDir, cfg, boundaries)
	if err != nil {
		return err
	}
	err = recordCtrl.Run(ctx, buckets, progress)
	progress.Done()
	if err != nil {
		return err
	}

	is := ingestCtrl.Stats()
	rs := recordCtrl.Stats()
	utils.L().Info("conversion finished",
		"files", is.Files,
		"files_skipped", is.Skipped,
		"rows", is.Rows,
		"rows_rejected", is.Rejected,
		"markers", is.Markers,
		"buckets", len(buckets),
		"flights_written", rs.FlightsWritten,
		"flights_deleted", rs.FlightsDeleted,
		"records_written", rs.RecordsWritten,
		"records_dropped", rs.RecordsDropped,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, models.ErrNotDirectory)
	}
	return nil
}

// execute runs the root command and maps its error onto an exit code. The
// logger is closed here, after the failure is recorded, so a --log file keeps
// the final error.
func execute(args ...string) int {
	defer func() { utils.L().Close() }()

	cmd := newRootCmd()
	if args != nil {
		cmd.SetArgs(args)
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, context.Canceled) {
			utils.L().Warn("conversion interrupted")
			return 130
		}
		utils.L().Error("conversion failed", "error", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute())
}
