// Package main provides the contentcheck binary, which loads every configured
// monster template, ability definition and Lua script and exits non-zero on
// the first invalid entry, so bad dice notation fails at authoring time.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicecore/internal/config"
	"github.com/cory-johannsen/dicecore/internal/game/ability"
	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/combat"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
	"github.com/cory-johannsen/dicecore/internal/game/npc"
	"github.com/cory-johannsen/dicecore/internal/observability"
	"github.com/cory-johannsen/dicecore/internal/scripting"
)

// Baseline player used by -simulate.
var (
	simPlayerAttack  = dice.D10()
	simPlayerDamage  = dice.MustParse("1d8")
	simPlayerDefense = 10
	simPlayerHP      = 20
)

const simPlayerDamageType = "slashing"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	start := time.Now()

	fs := flag.NewFlagSet("contentcheck", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file; empty uses defaults and DICE_ environment overrides")
	simulate := fs.Bool("simulate", false, "resolve one combat round against each monster template")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.LoadFromViper(config.NewViper())
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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
	roller := dice.NewLoggedRoller(src, logger)

	var templates []*npc.Template
	if dir := cfg.Content.NPCDir; dir != "" {
		templates, err = npc.LoadTemplates(dir)
		if err != nil {
			return err
		}
		logger.Info("loaded npc templates", zap.String("dir", dir), zap.Int("count", len(templates)))
		fmt.Fprintf(out, "npc templates: %d\n", len(templates))
	}

	if dir := cfg.Content.AbilityDir; dir != "" {
		reg, err := ability.LoadDirectory(dir)
		if err != nil {
			return err
		}
		logger.Info("loaded abilities", zap.String("dir", dir), zap.Int("count", len(reg.All())))
		fmt.Fprintf(out, "abilities: %d (ability %d, spell %d, skill %d)\n",
			len(reg.All()),
			len(reg.ByKind(ability.KindAbility)),
			len(reg.ByKind(ability.KindSpell)),
			len(reg.ByKind(ability.KindSkill)),
		)
	}

	if dir := cfg.Content.ScriptDir; dir != "" {
		mgr := scripting.NewManager(roller, classifier, logger)
		defer mgr.Close()
		if err := mgr.LoadGlobal(dir, cfg.Content.InstructionLimit); err != nil {
			return err
		}
		logger.Info("loaded scripts", zap.String("dir", dir))
		fmt.Fprintf(out, "scripts: ok\n")
	}

	if *simulate {
		if err := simulateRounds(out, templates, classifier, src); err != nil {
			return err
		}
	}

	logger.Info("content check passed", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// simulateRounds resolves one round of a baseline player against each template.
func simulateRounds(out io.Writer, templates []*npc.Template, classifier check.Classifier, src dice.Source) error {
	resolver := combat.NewResolver(classifier)
	for _, tmpl := range templates {
		initiative, err := combat.RollInitiative(tmpl.AttackPool(), tmpl.AttackBonus, src)
		if err != nil {
			return fmt.Errorf("npc %q: %w", tmpl.ID, err)
		}
		counter := tmpl.CounterAttack(simPlayerDefense, 0)
		req := combat.RoundRequest{
			Player: combat.Attack{
				Pool:              simPlayerAttack,
				TargetNumber:      tmpl.Defense,
				DamagePool:        simPlayerDamage,
				DamageTypeID:      simPlayerDamageType,
				ResistancePercent: tmpl.ResistanceTo(simPlayerDamageType),
			},
			MonsterHP: tmpl.MaxHP,
			Counter:   &counter,
			PlayerHP:  simPlayerHP,
		}
		res, err := resolver.ResolveRound(req, src)
		if err != nil {
			return fmt.Errorf("npc %q: %w", tmpl.ID, err)
		}
		line := fmt.Sprintf("%s (initiative %d): player %s for %d", tmpl.ID, initiative, res.Outcome, res.DamageDealt)
		if res.Counter != nil {
			line += fmt.Sprintf(", counter %s for %d", res.Counter.Outcome, res.Counter.DamageDealt)
		}
		if res.CombatEnded() {
			line += ", combat ended"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
