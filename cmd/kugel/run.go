package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pebblebed/kugel/pkg/config"
	"github.com/pebblebed/kugel/pkg/core"
	"github.com/pebblebed/kugel/pkg/deck"
	"github.com/pebblebed/kugel/pkg/pebble"
	"github.com/pebblebed/kugel/pkg/validation"
)

type loadOptions struct {
	sets   []string
	simple bool
}

type deckOptions struct {
	loadOptions
	output string
	zstd   bool
}

type traceOptions struct {
	loadOptions
	fuel  bool
	group int
	moves []string
	temp  float64
	power float64
	days  float64
}

// loadConfig loads the config and applies command-line overrides.
func loadConfig(path string, opts loadOptions) (*config.ReactorConfig, error) {
	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyOverrides(opts.sets); err != nil {
		return nil, err
	}
	if opts.simple {
		cfg.Options.SimpleCore = true
	}
	return cfg, nil
}

// buildCore loads, validates and assembles the core. A failing config
// report is printed before the error is returned.
func buildCore(path string, opts loadOptions) (*config.ReactorConfig, *core.Core, error) {
	cfg, err := loadConfig(path, opts)
	if err != nil {
		return nil, nil, err
	}
	asm, err := core.New(cfg, core.WithLogger(logger))
	if errors.Is(err, validation.ErrInvalid) {
		printValidationReport(validation.ValidateConfig(cfg))
		return nil, nil, fmt.Errorf("config has validation errors")
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, asm.Build(), nil
}

func runDeck(path string, opts deckOptions) error {
	cfg, c, err := buildCore(path, opts.loadOptions)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		return deck.NewTextWriter(os.Stdout).WriteCore(c)
	}

	target := opts.output
	if target == "" {
		target = filepath.Join(rt.OutputDir, rt.CoreFileName(cfg))
	}
	written, err := deck.WriteFile(target, c, opts.zstd || rt.Zstd)
	if err != nil {
		return err
	}
	logger.Info("deck written",
		zap.String("path", written),
		zap.Bool("simple", c.Simple),
		zap.Int("blocks", len(c.Blocks)),
		zap.Int("regions", len(c.Regions)),
	)
	fmt.Println(written)
	return nil
}

func runValidate(path string, opts loadOptions) error {
	cfg, err := loadConfig(path, opts)
	if err != nil {
		return err
	}

	report := validation.ValidateConfig(cfg)
	// Only a valid config can be assembled for the geometry checks.
	if report.Valid {
		asm, err := core.New(cfg, core.WithLogger(logger))
		if err != nil {
			return err
		}
		report.Merge(core.ValidateBuild(asm.Build()))
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runHeights(path string, opts loadOptions) error {
	cfg, err := loadConfig(path, opts)
	if err != nil {
		return err
	}
	eff := cfg.Effective()
	printHeights(core.ComputeHeights(eff.Heights), eff.Options.SimpleCore)
	return nil
}

// parseMove splits a trace move into its location and shuffle flag.
func parseMove(s string) (pebble.MeshLocation, bool, error) {
	shuffled := strings.HasPrefix(s, "+")
	loc, err := pebble.ParseMeshLocation(strings.TrimPrefix(s, "+"))
	return loc, shuffled, err
}

func runTrace(path string, opts traceOptions) error {
	cfg, err := loadConfig(path, opts.loadOptions)
	if err != nil {
		return err
	}
	if len(opts.moves) == 0 {
		return fmt.Errorf("at least one --move is required")
	}

	params, err := cfg.PebbleParams()
	if err != nil {
		return err
	}
	start, _, err := parseMove(opts.moves[0])
	if err != nil {
		return err
	}
	params.Mesh = start

	var p *pebble.Pebble
	if opts.fuel {
		kernel := cfg.PebbleBed.Kernel
		p, err = pebble.NewFuel(params, pebble.FuelParams{Group: opts.group, Kernel: &kernel})
	} else {
		p, err = pebble.NewGraphite(params)
	}
	if err != nil {
		return err
	}

	printTraceHeader(p)
	printTraceStep(0, p)
	for i, move := range opts.moves[1:] {
		loc, shuffled, err := parseMove(move)
		if err != nil {
			return err
		}
		if shuffled {
			p.IncreasePass()
		}
		p.UpdatePosition(p.Position, loc, shuffled)
		if opts.temp > 0 {
			if err := p.UpdateTemperature(opts.temp); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if p.Kind == pebble.Fuel && opts.days > 0 {
			if err := p.UpdateBurnup(opts.power, opts.days); err != nil {
				return err
			}
		}
		printTraceStep(i+1, p)
		logger.Debug("pebble moved",
			zap.String("universe", p.Universe),
			zap.Bool("shuffled", shuffled),
			zap.Int("passes", p.Passes),
		)
	}

	if p.ExceedsPassLimit() {
		fmt.Printf("\nWARNING: pebble made %d passes, limit is %d\n", p.Passes, p.PassLimit)
	}
	return nil
}
