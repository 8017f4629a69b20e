// Package ai implements the boss's turn policy.
package ai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/game/ability"
	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/narration"
)

// DefaultRegen is the health the boss regenerates at the start of each of its turns.
const DefaultRegen = 5

// Chooser picks a uniform index in [0, n).
type Chooser interface {
	Choose(n int) int
}

// Resolver lists and resolves class abilities. *ability.Catalog satisfies it.
type Resolver interface {
	ListAbilities(c *character.Character) []string
	Resolve(actor *character.Character, index int, target *character.Character) (ability.EffectResult, error)
}

// Turn is the outcome of one boss turn.
type Turn struct {
	// Regenerated is the health actually restored (0 at full health).
	Regenerated int
	// AbilityIndex is the 1-based ability used.
	AbilityIndex int
	Effect       ability.EffectResult
	Events       []narration.Event
}

// WizardPolicy regenerates the boss and then uses one of its abilities chosen
// uniformly at random. Choices are memoryless: no weighting, no cooldowns.
type WizardPolicy struct {
	Regen   int
	chooser Chooser
	logger  *zap.Logger
}

// NewWizardPolicy creates a policy regenerating regen health per turn.
//
// Precondition: chooser must be non-nil; regen must be >= 0.
// Postcondition: a nil logger is replaced with a no-op logger.
func NewWizardPolicy(regen int, chooser Chooser, logger *zap.Logger) *WizardPolicy {
	if chooser == nil {
		panic("ai.NewWizardPolicy: chooser must not be nil")
	}
	if regen < 0 {
		panic(fmt.Sprintf("ai.NewWizardPolicy: regen must be >= 0, got %d", regen))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardPolicy{Regen: regen, chooser: chooser, logger: logger}
}

// TakeTurn regenerates boss, then resolves a uniformly chosen boss ability
// against player.
//
// Precondition: boss and player must be non-nil and boss must not be defeated.
// Postcondition: boss.Health <= boss.MaxHealth; the returned error is non-nil
// only if the boss class has no abilities or resolution failed.
func (p *WizardPolicy) TakeTurn(boss, player *character.Character, r Resolver) (Turn, error) {
	if boss == nil || player == nil {
		panic("ai.WizardPolicy.TakeTurn: boss and player must not be nil")
	}
	var turn Turn
	turn.Regenerated = boss.Restore(p.Regen)
	turn.Events = append(turn.Events, narration.Event{
		Kind:   narration.KindRegenerate,
		Actor:  boss.Name,
		Amount: p.Regen,
		Text:   fmt.Sprintf("%s regenerates %d health! (Health: %d/%d)", boss.Name, p.Regen, boss.Health, boss.MaxHealth),
	})

	n := len(r.ListAbilities(boss))
	if n == 0 {
		return turn, fmt.Errorf("ai.WizardPolicy.TakeTurn: %s has no abilities", boss.ClassID)
	}
	turn.AbilityIndex = p.chooser.Choose(n) + 1
	effect, err := r.Resolve(boss, turn.AbilityIndex, player)
	if err != nil {
		return turn, fmt.Errorf("ai.WizardPolicy.TakeTurn: %w", err)
	}
	turn.Effect = effect
	turn.Events = append(turn.Events, effect.Events...)

	p.logger.Debug("boss turn",
		zap.String("boss", boss.Name),
		zap.Int("regenerated", turn.Regenerated),
		zap.Int("ability_index", turn.AbilityIndex),
		zap.String("ability", effect.AbilityID),
		zap.Int("damage", effect.Damage),
	)
	return turn, nil
}
