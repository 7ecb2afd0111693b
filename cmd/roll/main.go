// Package main provides the roll binary, which rolls dice notation from the
// command line and optionally classifies each roll against a difficulty class.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicecore/internal/config"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
	"github.com/cory-johannsen/dicecore/internal/observability"
)

const usage = "usage: roll [-config <file>] [-dc N] [-bonus N] [-adv|-dis] [-seed N] <notation>..."

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file; empty uses defaults and DICE_ environment overrides")
	dc := fs.Int("dc", 0, "difficulty class; when set, each roll is classified")
	bonus := fs.Int("bonus", 0, "bonus added to the roll before classification")
	adv := fs.Bool("adv", false, "roll with advantage")
	dis := fs.Bool("dis", false, "roll with disadvantage")
	seed := fs.Int64("seed", 0, "seed for a deterministic source; overrides rules.source")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New(usage)
	}
	if *adv && *dis {
		return errors.New("-adv and -dis are mutually exclusive")
	}
	classify := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dc" {
			classify = true
		}
	})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *seed != 0 {
		cfg.Rules.Source = config.SourceSeeded
		cfg.Rules.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	classifier, err := cfg.Rules.Classifier()
	if err != nil {
		return err
	}
	src, err := cfg.Rules.NewSource()
	if err != nil {
		return err
	}
	if s, ok := src.(*dice.SeededSource); ok {
		logger.Info("seeded source", zap.Int64("seed", s.Seed()))
		fmt.Fprintf(out, "seed %d\n", s.Seed())
	}

	mode := dice.NoAdvantage
	switch {
	case *adv:
		mode = dice.Advantage
	case *dis:
		mode = dice.Disadvantage
	}

	roller := dice.NewLoggedRoller(src, logger)
	for _, notation := range fs.Args() {
		pool, err := dice.Parse(notation)
		if err != nil {
			return err
		}
		r, err := roller.RollWith(pool, mode)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, r.String())
		if classify {
			res := classifier.SkillCheck(r, *bonus, 0, *dc)
			fmt.Fprintf(out, "  %d vs DC %d (margin %+d): %s, %s\n",
				res.TotalResult, res.DifficultyClass, res.Margin, res.Outcome, res.Descriptor())
		}
	}
	return nil
}

// loadConfig reads path, or builds the default configuration when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromViper(config.NewViper())
	}
	return config.Load(path)
}
