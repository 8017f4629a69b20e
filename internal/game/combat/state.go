// Package combat drives a battle between the player and the boss as an
// explicit turn state machine.
package combat

// State is a battle state machine state.
type State int

const (
	StatePlayerTurn State = iota
	StatePlayerActionResolved
	StateCheckBossDefeated
	StateBossTurn
	StateBossActionResolved
	StateCheckPlayerDefeated
	StateVictory
	StateDefeat
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePlayerTurn:
		return "player_turn"
	case StatePlayerActionResolved:
		return "player_action_resolved"
	case StateCheckBossDefeated:
		return "check_boss_defeated"
	case StateBossTurn:
		return "boss_turn"
	case StateBossActionResolved:
		return "boss_action_resolved"
	case StateCheckPlayerDefeated:
		return "check_player_defeated"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends the battle.
func (s State) Terminal() bool { return s == StateVictory || s == StateDefeat }

// Outcome is how a finished battle ended.
type Outcome int

const (
	// OutcomeNone means the battle has not finished.
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// outcomeFor maps a terminal state to its Outcome.
func outcomeFor(s State) Outcome {
	switch s {
	case StateVictory:
		return OutcomeVictory
	case StateDefeat:
		return OutcomeDefeat
	default:
		return OutcomeNone
	}
}
