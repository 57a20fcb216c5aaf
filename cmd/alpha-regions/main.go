package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/alpha-regions/internal/config"
	"github.com/ironsheep/alpha-regions/internal/detection"
	"github.com/ironsheep/alpha-regions/internal/imaging"
	"github.com/ironsheep/alpha-regions/internal/report"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout carries the region list)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("alpha-regions", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "alpha-regions - bounding rectangles of opaque regions in an image")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: alpha-regions [options] IMAGE")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		flags.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintf(stderr, "  %s=debug    Enable debug logging\n", config.EnvLogLevel)
	}

	var output string
	flags.StringVar(&output, "o", "", "Write an overlay of the detected regions to this file (.png, .jpg, .bmp)")
	flags.StringVar(&output, "output", "", "Same as -o")
	configPath := flags.String("config", "", "YAML config file")
	format := flags.String("format", "", "Output format: text, json or yaml (default from config, else text)")
	maxSteps := flags.Int("max-steps", 0, "Cap on boundary trace steps, 0 = automatic")
	tint := flags.String("tint", "", "Overlay tint as hex color, e.g. #ff0000")
	extractDir := flags.String("extract", "", "Save each region as its own PNG in this directory")
	alpha := flags.Uint("alpha", 0, "Overlay alpha 1-255 (default from config, else 205)")
	version := flags.Bool("version", false, "Print version information")

	// flag stops at the first positional, so options may also follow IMAGE.
	var inputs []string
	for {
		if err := flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			return 2
		}
		if flags.NArg() == 0 {
			break
		}
		inputs = append(inputs, flags.Arg(0))
		args = flags.Args()[1:]
	}

	if *version {
		fmt.Fprintf(stdout, "alpha-regions %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}

	if len(inputs) != 1 {
		flags.Usage()
		return 2
	}
	input := inputs[0]

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Err: %v\n", err)
			return 2
		}
		cfg = loaded
	}

	// Flags given on the command line win over the config file.
	var flagErr error
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "max-steps":
			cfg.MaxSteps = *maxSteps
		case "tint":
			cfg.Overlay.Tint = *tint
		case "alpha":
			if *alpha < 1 || *alpha > 255 {
				flagErr = fmt.Errorf("-alpha must be between 1 and 255, got %d", *alpha)
				return
			}
			cfg.Overlay.Alpha = uint8(*alpha)
		}
	})
	if flagErr == nil {
		flagErr = cfg.Validate()
	}
	if flagErr != nil {
		fmt.Fprintf(stderr, "Err: %v\n", flagErr)
		return 2
	}
	cfg.ApplyEnv()

	outFormat, err := report.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Err: %v\n", err)
		return 2
	}
	overlayTint, err := imaging.ParseTint(cfg.Overlay.Tint)
	if err != nil {
		fmt.Fprintf(stderr, "Err: %v\n", err)
		return 2
	}

	if cfg.Debug() {
		log.Printf("alpha-regions v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if _, err := os.Stat(input); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Err: Could not find file - %s\n", input)
		return 1
	}

	cache := imaging.NewImageCache()
	mask, err := imaging.LoadMask(cache, input)
	if err != nil {
		fmt.Fprintf(stderr, "Err: Could not parse image format - %v\n", err)
		return 1
	}

	rects, err := detection.FindRegions(mask, detection.WithMaxSteps(cfg.MaxSteps))
	if err != nil {
		fmt.Fprintf(stderr, "Err: %v\n", err)
		return 1
	}
	if cfg.Debug() {
		w, h := mask.Dimensions()
		log.Printf("%s: %dx%d, %d opaque pixels, %d regions", input, w, h, mask.Count(), len(rects))
	}

	if err := report.Write(stdout, rects, outFormat); err != nil {
		fmt.Fprintf(stderr, "Err: %v\n", err)
		return 1
	}

	if output != "" {
		w, h := mask.Dimensions()
		overlay := imaging.RenderOverlay(w, h, rects, imaging.OverlayOptions{
			Alpha: cfg.Overlay.Alpha,
			Tint:  overlayTint,
		})
		if err := imaging.SaveImage(output, overlay); err != nil {
			fmt.Fprintf(stderr, "Err: Could not save output file - %v\n", err)
			return 1
		}
	}

	if *extractDir != "" {
		img, err := cache.Load(input)
		if err != nil {
			fmt.Fprintf(stderr, "Err: Could not parse image format - %v\n", err)
			return 1
		}
		prefix := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		extracted, err := imaging.ExtractRegions(img, rects, *extractDir, prefix, 1.0)
		if err != nil {
			fmt.Fprintf(stderr, "Err: Could not save output file - %v\n", err)
			return 1
		}
		if cfg.Debug() {
			log.Printf("extracted %d regions to %s", len(extracted), *extractDir)
		}
	}

	return 0
}
