// Command wallaxis reconstructs wall centerlines from a floor-plan batch and
// maps them onto structural frames.
//
// Usage:
//
//	wallaxis -input floor1.json [-config tuning.json] [-output result.json] [-db runs.db]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/wallmap/internal/batch"
	"github.com/banshee-data/wallmap/internal/config"
	"github.com/banshee-data/wallmap/internal/fsutil"
	"github.com/banshee-data/wallmap/internal/mapping"
	"github.com/banshee-data/wallmap/internal/monitoring"
	"github.com/banshee-data/wallmap/internal/security"
	"github.com/banshee-data/wallmap/internal/store"
	"github.com/banshee-data/wallmap/internal/version"
	"github.com/banshee-data/wallmap/internal/wall"
)

var (
	inputPath   = flag.String("input", "", "batch JSON file (required)")
	configPath  = flag.String("config", "", "tuning JSON file; built-in defaults when empty")
	outputPath  = flag.String("output", "", "result JSON file; stdout when empty")
	dbPath      = flag.String("db", "", "sqlite database to record the run in")
	verbose     = flag.Bool("verbose", false, "log per-stage pipeline counts")
	showVersion = flag.Bool("version", false, "print version and exit")
)

type options struct {
	input   string
	config  string
	output  string
	db      string
	verbose bool
}

var errNoInput = errors.New("-input is required")

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("wallaxis", version.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{
		input:   *inputPath,
		config:  *configPath,
		output:  *outputPath,
		db:      *dbPath,
		verbose: *verbose,
	}
	for _, p := range []string{opts.output, opts.db} {
		if p == "" {
			continue
		}
		if err := security.ValidateOutputPath(p); err != nil {
			log.Fatalf("wallaxis: %v", err)
		}
	}
	if err := run(ctx, opts, fsutil.OSFileSystem{}, os.Stdout); err != nil {
		if errors.Is(err, errNoInput) {
			flag.Usage()
		}
		log.Fatalf("wallaxis: %v", err)
	}
}

func run(ctx context.Context, opts options, fsys fsutil.FileSystem, stdout io.Writer) error {
	if opts.input == "" {
		return errNoInput
	}
	monitoring.SetVerbose(opts.verbose)

	tuning := config.DefaultTuningConfig()
	if opts.config != "" {
		var err error
		if tuning, err = config.LoadTuningConfigFS(fsys, opts.config); err != nil {
			return err
		}
	}

	b, err := batch.LoadFile(fsys, opts.input)
	if err != nil {
		return err
	}

	proc := wall.NewProcessor(tuning.ProcessorConfig())
	mapper := mapping.NewMapper(tuning.MappingConfig())
	res := batch.Run(proc, mapper, b)

	unmapped := 0
	for _, w := range res.Walls {
		if w.Unmapped() {
			unmapped++
		}
	}
	log.Printf("run %s: %d lines -> %d centerlines (%d pairs, %d single), %d without a frame",
		res.RunID, res.Stats.InputLines, len(res.CenterLines), res.Stats.Pairs, res.Stats.SingleLines, unmapped)

	if opts.db != "" {
		st, err := store.Open(opts.db)
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := st.SaveRun(ctx, res); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		log.Printf("recorded run %s in %s", res.RunID, opts.db)
	}

	if opts.output == "" {
		return batch.Encode(stdout, res)
	}
	return batch.SaveFile(fsys, opts.output, res)
}
