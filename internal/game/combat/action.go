package combat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/evilwizard/internal/game/character"
)

// ActionType identifies what the player chose on their turn.
// The zero value (ActionInvalid) is an unrecognized menu choice.
type ActionType int

const (
	ActionInvalid ActionType = iota // unrecognized menu choice
	ActionAttack                    // normal attack
	ActionAbility                   // class ability by 1-based index
	ActionHeal                      // heal by an amount
	ActionInspect                   // show both characters' stats
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	case ActionHeal:
		return "heal"
	case ActionInspect:
		return "inspect"
	default:
		return "invalid"
	}
}

// Action is one player decision.
type Action struct {
	Type ActionType
	// Index is the 1-based ability index for ActionAbility.
	Index int
	// Amount is the requested heal for ActionHeal.
	Amount int
	// Malformed marks ability or heal input that was not a number.
	Malformed bool
}

// Attack returns a normal attack action.
func Attack() Action { return Action{Type: ActionAttack} }

// UseAbility returns an action using the ability at 1-based index.
func UseAbility(index int) Action { return Action{Type: ActionAbility, Index: index} }

// Heal returns an action healing the player by amount.
func Heal(amount int) Action { return Action{Type: ActionHeal, Amount: amount} }

// Inspect returns a stats display action.
func Inspect() Action { return Action{Type: ActionInspect} }

// MalformedAbility returns an ability action whose index could not be read.
func MalformedAbility() Action { return Action{Type: ActionAbility, Malformed: true} }

// MalformedHeal returns a heal action whose amount could not be read.
func MalformedHeal() Action { return Action{Type: ActionHeal, Malformed: true} }

// Invalid returns the action for an unrecognized menu choice.
func Invalid() Action { return Action{Type: ActionInvalid} }

// String renders the action for logs.
func (a Action) String() string {
	if a.Malformed {
		return a.Type.String() + " (malformed)"
	}
	switch a.Type {
	case ActionAbility:
		return fmt.Sprintf("ability %d", a.Index)
	case ActionHeal:
		return fmt.Sprintf("heal %d", a.Amount)
	default:
		return a.Type.String()
	}
}

// ParseHealAmount parses raw heal input.
//
// Postcondition: Returns an error wrapping character.ErrInvalidHealAmount when
// s is not an integer. Non-positive integers parse successfully and are
// rejected later by Character.Heal.
func ParseHealAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", character.ErrInvalidHealAmount, s)
	}
	return n, nil
}

// ParseAbilityChoice reads a typed ability number. Non-integers yield MalformedAbility.
func ParseAbilityChoice(s string) Action {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return MalformedAbility()
	}
	return UseAbility(n)
}

// ParseHealChoice reads a typed heal amount. Non-integers yield MalformedHeal.
func ParseHealChoice(s string) Action {
	n, err := ParseHealAmount(s)
	if err != nil {
		return MalformedHeal()
	}
	return Heal(n)
}
