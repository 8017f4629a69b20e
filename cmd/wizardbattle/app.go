package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/config"
	"github.com/cory-johannsen/evilwizard/internal/game/ability"
	"github.com/cory-johannsen/evilwizard/internal/game/ai"
	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/combat"
	"github.com/cory-johannsen/evilwizard/internal/game/dice"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
	"github.com/cory-johannsen/evilwizard/internal/observability"
)

// app holds what every command needs: configuration, a logger and the class registry.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	reg    *ruleset.Registry
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	reg, err := loadRegistry(cfg.Content.ClassesDir)
	if err != nil {
		logger.Sync() //nolint:errcheck
		return nil, err
	}
	logger.Debug("ruleset loaded",
		zap.Int("player_classes", len(reg.PlayerClasses())),
		zap.String("classes_dir", cfg.Content.ClassesDir),
	)
	return &app{cfg: cfg, logger: logger, reg: reg}, nil
}

func (a *app) close() {
	a.logger.Sync() //nolint:errcheck
}

// loadRegistry reads class YAML from dir, or the built-in classes when dir is empty.
//
// Postcondition: The registry holds a default player class and a boss, or an
// error wrapping ruleset.ErrUnknownClass is returned.
func loadRegistry(dir string) (*ruleset.Registry, error) {
	if dir == "" {
		return ruleset.LoadDefaultRegistry()
	}
	return ruleset.LoadRegistry(os.DirFS(dir), ".")
}

// newRoller returns a reproducible roller for a nonzero seed, otherwise a crypto-backed one.
func newRoller(seed uint64, logger *zap.Logger) *dice.Roller {
	if seed != 0 {
		return dice.NewRoller(dice.NewSeededSource(seed), logger)
	}
	return dice.NewRoller(dice.NewCryptoSource(), logger)
}

// newBattle pits player against the configured boss.
func (a *app) newBattle(player *character.Character, roller *dice.Roller) (*combat.Battle, error) {
	boss, err := character.CreateByID(a.reg, a.cfg.Battle.BossClass, a.cfg.Battle.BossName)
	if err != nil {
		return nil, fmt.Errorf("creating boss: %w", err)
	}
	catalog := ability.NewCatalog(a.reg, roller, a.logger)
	policy := ai.NewWizardPolicy(a.cfg.Battle.RegenAmount, roller, a.logger)
	return combat.NewBattle(player, boss, catalog, roller, policy, a.logger), nil
}

// playerClass returns the player class registered under id. Boss classes are refused.
func (a *app) playerClass(id string) (*ruleset.ClassDefinition, error) {
	def, ok := a.reg.Class(id)
	if !ok || def.Boss {
		return nil, fmt.Errorf("%w: %q is not a player class", ruleset.ErrUnknownClass, id)
	}
	return def, nil
}

// presetClassNumber returns the menu number of player.default_class, or 0 when unset.
func (a *app) presetClassNumber() (int, error) {
	id := a.cfg.Player.DefaultClass
	if id == "" {
		return 0, nil
	}
	def, err := a.playerClass(id)
	if err != nil {
		return 0, fmt.Errorf("player.default_class: %w", err)
	}
	return def.Number, nil
}
