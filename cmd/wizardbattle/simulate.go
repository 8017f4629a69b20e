package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/frontend/console"
	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/combat"
	"github.com/cory-johannsen/evilwizard/internal/game/dice"
	"github.com/cory-johannsen/evilwizard/internal/scripting"
)

var (
	simStrategy string
	simSeed     uint64
	simClass    string
	simName     string
	simGames    int
	simVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run battles with a Lua strategy choosing the player's actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		opts := simOptions{
			strategy: a.cfg.Scripting.Strategy,
			seed:     a.cfg.Battle.Seed,
			class:    a.cfg.Player.DefaultClass,
			name:     a.cfg.Player.Name,
			games:    simGames,
			verbose:  simVerbose,
		}
		if cmd.Flags().Changed("strategy") {
			opts.strategy = simStrategy
		}
		if cmd.Flags().Changed("seed") {
			opts.seed = simSeed
		}
		if cmd.Flags().Changed("class") {
			opts.class = simClass
		}
		if cmd.Flags().Changed("name") {
			opts.name = simName
		}
		return runSimulate(cmd.Context(), a, opts, cmd.OutOrStdout())
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simStrategy, "strategy", "", "built-in strategy name or path to a .lua file")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "random seed; 0 uses crypto/rand")
	simulateCmd.Flags().StringVar(&simClass, "class", "", "player class id (default warrior)")
	simulateCmd.Flags().StringVar(&simName, "name", "", "player name")
	simulateCmd.Flags().IntVar(&simGames, "games", 1, "number of battles to run")
	simulateCmd.Flags().BoolVarP(&simVerbose, "verbose", "v", false, "print the narration of every battle")
}

type simOptions struct {
	strategy string
	seed     uint64
	class    string
	name     string
	games    int
	verbose  bool
}

// simResult summarizes one simulated battle.
type simResult struct {
	Outcome      combat.Outcome
	Turns        int
	PlayerHealth int
	BossHealth   int
}

func runSimulate(ctx context.Context, a *app, opts simOptions, w io.Writer) error {
	if opts.games < 1 {
		return fmt.Errorf("--games must be >= 1, got %d", opts.games)
	}
	if opts.class == "" {
		opts.class = a.reg.Default().ID
	}
	if opts.name == "" {
		opts.name = console.DefaultHeroName
	}
	if _, err := a.playerClass(opts.class); err != nil {
		return err
	}

	// One roller for the whole run keeps a seeded simulation reproducible.
	roller := newRoller(opts.seed, a.logger)
	strategy, err := scripting.Open(opts.strategy, roller, a.cfg.Scripting.InstructionLimit, a.logger)
	if err != nil {
		return err
	}
	defer strategy.Close()

	var wins int
	for i := 0; i < opts.games; i++ {
		res, err := simulateOne(ctx, a, opts, roller, strategy, w)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		if res.Outcome == combat.OutcomeVictory {
			wins++
		}
		fmt.Fprintf(w, "game %d: %s in %d turns (player %d, boss %d)\n",
			i+1, res.Outcome, res.Turns, res.PlayerHealth, res.BossHealth)
	}
	if opts.games > 1 {
		fmt.Fprintf(w, "strategy %s won %d of %d (%.1f%%)\n",
			strategy.Name, wins, opts.games, 100*float64(wins)/float64(opts.games))
	}
	return nil
}

func simulateOne(ctx context.Context, a *app, opts simOptions, roller *dice.Roller, strategy *scripting.Strategy, w io.Writer) (simResult, error) {
	player, err := character.CreateByID(a.reg, opts.class, opts.name)
	if err != nil {
		return simResult{}, err
	}
	b, err := a.newBattle(player, roller)
	if err != nil {
		return simResult{}, err
	}
	var sink combat.Sink
	if opts.verbose {
		sink = console.NewRenderer(w, console.Palette{Enabled: a.cfg.Display.Color}, false).Render
	}
	outcome, err := combat.RunBattle(ctx, b, strategy, sink, combat.WithTurnLimit(a.cfg.Battle.MaxTurns))
	if err != nil {
		return simResult{}, err
	}
	a.logger.Debug("simulation finished", zap.String("battle_id", b.ID), zap.Stringer("outcome", outcome))
	return simResult{
		Outcome:      outcome,
		Turns:        b.Turn(),
		PlayerHealth: b.Player().Health,
		BossHealth:   b.Boss().Health,
	}, nil
}
