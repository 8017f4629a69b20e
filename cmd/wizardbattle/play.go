package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/frontend/console"
	"github.com/cory-johannsen/evilwizard/internal/game/combat"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive battle against the Evil Wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runPlay(ctx, a)
	},
}

func runPlay(ctx context.Context, a *app) error {
	palette := console.Palette{Enabled: a.cfg.Display.Color}
	out := os.Stdout
	renderer := console.NewRenderer(out, palette, true)
	prompter := console.NewPrompter(os.Stdin, out, palette, a.logger)

	renderer.Println(console.Intro...)
	renderer.Println("")

	classNumber, err := a.presetClassNumber()
	if err != nil {
		return err
	}
	player, err := prompter.CreateCharacter(ctx, a.reg, classNumber, a.cfg.Player.Name)
	if errors.Is(err, console.ErrInputClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}

	b, err := a.newBattle(player, newRoller(a.cfg.Battle.Seed, a.logger))
	if err != nil {
		return err
	}
	outcome, err := combat.RunBattle(ctx, b, prompter, renderer.Render, combat.WithTurnLimit(a.cfg.Battle.MaxTurns))
	if errors.Is(err, console.ErrInputClosed) || errors.Is(err, context.Canceled) {
		a.logger.Info("battle abandoned", zap.Int("turn", b.Turn()), zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}
	a.logger.Debug("play finished", zap.Stringer("outcome", outcome))
	return renderer.Err()
}
