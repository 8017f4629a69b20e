// Package narration defines the human-readable event stream a battle emits
// for the rendering layer.
package narration

import "strings"

// Kind classifies a narration event so renderers can style it.
type Kind string

const (
	KindTurn            Kind = "turn"
	KindAttack          Kind = "attack"
	KindAbility         Kind = "ability"
	KindAbilityRejected Kind = "ability_rejected"
	KindHeal            Kind = "heal"
	KindHealRejected    Kind = "heal_rejected"
	KindBuff            Kind = "buff"
	KindSelfDamage      Kind = "self_damage"
	KindRegenerate      Kind = "regenerate"
	KindStats           Kind = "stats"
	KindInvalidChoice   Kind = "invalid_choice"
	KindDefeat          Kind = "defeat"
	KindVictory         Kind = "victory"
	KindLoss            Kind = "loss"
	KindGameOver        Kind = "game_over"
)

// Event is one narrated outcome.
type Event struct {
	Kind   Kind
	Actor  string
	Target string
	// Amount is the number the line is about (damage, heal, bonus); 0 when none.
	Amount int
	Text   string
}

// String returns the event text.
func (e Event) String() string { return e.Text }

// Fill substitutes {actor}, {target} and {amount} in tmpl.
func Fill(tmpl, actor, target, amount string) string {
	return strings.NewReplacer("{actor}", actor, "{target}", target, "{amount}", amount).Replace(tmpl)
}
