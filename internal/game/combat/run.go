package combat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/game/narration"
)

// ErrTurnLimit is returned by RunBattle when a turn limit is set and reached.
var ErrTurnLimit = errors.New("turn limit reached")

//go:generate mockgen -destination=mock/mock_selector.go -package=combatmock github.com/cory-johannsen/evilwizard/internal/game/combat ActionSelector

// ActionSelector chooses the player's action each turn. The console prompter
// and scripted strategies implement it.
type ActionSelector interface {
	SelectAction(ctx context.Context, view View) (Action, error)
}

// SelectorFunc adapts a function to ActionSelector.
type SelectorFunc func(ctx context.Context, view View) (Action, error)

// SelectAction calls f.
func (f SelectorFunc) SelectAction(ctx context.Context, view View) (Action, error) {
	return f(ctx, view)
}

// Sink receives narration events in order.
type Sink func(narration.Event)

type runOptions struct {
	turnLimit int
}

// RunOption configures RunBattle.
type RunOption func(*runOptions)

// WithTurnLimit stops the battle with ErrTurnLimit after n turns. n <= 0 means no limit.
func WithTurnLimit(n int) RunOption {
	return func(o *runOptions) { o.turnLimit = n }
}

// RunBattle drives b to completion, asking selector for each player action
// and passing every narration event to sink.
//
// Precondition: b and selector must be non-nil. A nil sink discards events.
// Postcondition: On nil error the outcome is OutcomeVictory or OutcomeDefeat.
// Errors come only from the selector, the context or the turn limit.
func RunBattle(ctx context.Context, b *Battle, selector ActionSelector, sink Sink, opts ...RunOption) (Outcome, error) {
	if b == nil || selector == nil {
		panic("combat.RunBattle: battle and selector must not be nil")
	}
	if sink == nil {
		sink = func(narration.Event) {}
	}
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	b.logger.Info("battle started",
		zap.String("player", b.player.Name),
		zap.String("class", b.player.ClassID),
		zap.String("boss", b.boss.Name),
	)
	for !b.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return OutcomeNone, err
		}
		if o.turnLimit > 0 && b.turn >= o.turnLimit {
			return OutcomeNone, fmt.Errorf("%w: %d", ErrTurnLimit, o.turnLimit)
		}
		action, err := selector.SelectAction(ctx, b.View())
		if err != nil {
			return OutcomeNone, fmt.Errorf("selecting action for turn %d: %w", b.turn+1, err)
		}
		res, err := b.Step(action)
		if err != nil {
			return OutcomeNone, err
		}
		for _, e := range res.Events {
			sink(e)
		}
	}
	sink(narration.Event{Kind: narration.KindGameOver, Text: "Game Over."})

	outcome := b.Outcome()
	b.logger.Info("battle finished",
		zap.Stringer("outcome", outcome),
		zap.Int("turns", b.turn),
		zap.Int("player_health", b.player.Health),
		zap.Int("boss_health", b.boss.Health),
	)
	return outcome, nil
}
