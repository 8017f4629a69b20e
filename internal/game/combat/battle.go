package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/game/ability"
	"github.com/cory-johannsen/evilwizard/internal/game/ai"
	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/narration"
)

// PlayerTurnHeader opens every player turn.
const PlayerTurnHeader = "--- Your Turn ---"

// ErrBattleOver is returned by Step once the battle reached Victory or Defeat.
var ErrBattleOver = errors.New("battle is over")

// ErrInvalidSelection is the ability package's out-of-range index error,
// re-exported for menu layers.
var ErrInvalidSelection = ability.ErrInvalidSelection

// BossPolicy takes the boss's turn. *ai.WizardPolicy satisfies it.
type BossPolicy interface {
	TakeTurn(boss, player *character.Character, r ai.Resolver) (ai.Turn, error)
}

// TurnResult reports one call to Step.
type TurnResult struct {
	Turn   int
	Action Action
	// State is PlayerTurn, Victory or Defeat.
	State State
	// Boss is nil when the boss did not act.
	Boss   *ai.Turn
	Events []narration.Event
}

// CharacterView is a read-only snapshot of a character.
type CharacterView struct {
	Name        string
	ClassID     string
	Health      int
	MaxHealth   int
	AttackPower int
}

func viewOf(c *character.Character) CharacterView {
	return CharacterView{
		Name:        c.Name,
		ClassID:     c.ClassID,
		Health:      c.Health,
		MaxHealth:   c.MaxHealth,
		AttackPower: c.AttackPower,
	}
}

// View is the state offered to an ActionSelector.
type View struct {
	// Turn is the number of the turn about to be played, starting at 1.
	Turn      int
	Player    CharacterView
	Boss      CharacterView
	Abilities []string
}

// Battle is one fight between a player and the boss.
//
// Invariant: state is PlayerTurn, Victory or Defeat between calls to Step.
type Battle struct {
	ID       string
	player   *character.Character
	boss     *character.Character
	resolver ai.Resolver
	roller   character.Roller
	policy   BossPolicy
	logger   *zap.Logger
	state    State
	turn     int
}

// NewBattle creates a battle in PlayerTurn.
//
// Precondition: player, boss, resolver, roller and policy must be non-nil.
// Postcondition: a nil logger is replaced with a no-op logger.
func NewBattle(player, boss *character.Character, resolver ai.Resolver, roller character.Roller, policy BossPolicy, logger *zap.Logger) *Battle {
	if player == nil || boss == nil {
		panic("combat.NewBattle: player and boss must not be nil")
	}
	if resolver == nil || roller == nil || policy == nil {
		panic("combat.NewBattle: resolver, roller and policy must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Battle{
		ID:       id,
		player:   player,
		boss:     boss,
		resolver: resolver,
		roller:   roller,
		policy:   policy,
		logger:   logger.With(zap.String("battle_id", id)),
		state:    StatePlayerTurn,
	}
}

// State returns the current state.
func (b *Battle) State() State { return b.state }

// Turn returns the number of completed player turns.
func (b *Battle) Turn() int { return b.turn }

// Player returns the player character.
func (b *Battle) Player() *character.Character { return b.player }

// Boss returns the boss character.
func (b *Battle) Boss() *character.Character { return b.boss }

// Outcome returns the battle outcome, OutcomeNone while it is running.
func (b *Battle) Outcome() Outcome { return outcomeFor(b.state) }

// View returns a snapshot for action selection.
func (b *Battle) View() View {
	return View{
		Turn:      b.turn + 1,
		Player:    viewOf(b.player),
		Boss:      viewOf(b.boss),
		Abilities: b.resolver.ListAbilities(b.player),
	}
}

// Step resolves the player's action and runs the state machine until the
// next PlayerTurn or a terminal state.
//
// Every action, including inspect and rejected ones, is followed by the boss
// turn unless the player's action defeated the boss.
//
// Precondition: b.State() == StatePlayerTurn, otherwise ErrBattleOver.
// Postcondition: both characters' health stays within [0, max]; the result
// state is PlayerTurn, Victory or Defeat.
func (b *Battle) Step(a Action) (TurnResult, error) {
	if b.state != StatePlayerTurn {
		return TurnResult{}, fmt.Errorf("%w: state %s", ErrBattleOver, b.state)
	}
	b.turn++
	res := TurnResult{Turn: b.turn, Action: a}
	emit := func(events ...narration.Event) { res.Events = append(res.Events, events...) }

	for {
		switch b.state {
		case StatePlayerTurn:
			emit(narration.Event{Kind: narration.KindTurn, Actor: b.player.Name, Text: PlayerTurnHeader})
			emit(b.resolvePlayer(a)...)
			b.transition(StatePlayerActionResolved)

		case StatePlayerActionResolved:
			b.transition(StateCheckBossDefeated)

		case StateCheckBossDefeated:
			if b.boss.IsDefeated() {
				emit(narration.Event{
					Kind:   narration.KindVictory,
					Actor:  b.player.Name,
					Target: b.boss.Name,
					Text:   victoryText(b.boss, b.player),
				})
				b.transition(StateVictory)
				continue
			}
			b.transition(StateBossTurn)

		case StateBossTurn:
			emit(narration.Event{
				Kind:  narration.KindTurn,
				Actor: b.boss.Name,
				Text:  fmt.Sprintf("--- %s's Turn ---", b.boss.Name),
			})
			turn, err := b.policy.TakeTurn(b.boss, b.player, b.resolver)
			if err != nil {
				b.logger.Warn("boss turn failed", zap.Error(err))
			}
			res.Boss = &turn
			emit(turn.Events...)
			b.transition(StateBossActionResolved)

		case StateBossActionResolved:
			b.transition(StateCheckPlayerDefeated)

		case StateCheckPlayerDefeated:
			if b.player.IsDefeated() {
				emit(narration.Event{
					Kind:   narration.KindLoss,
					Actor:  b.boss.Name,
					Target: b.player.Name,
					Text:   lossText(b.player, b.boss),
				})
				b.transition(StateDefeat)
				continue
			}
			b.transition(StatePlayerTurn)
		}

		if b.state == StatePlayerTurn || b.state.Terminal() {
			res.State = b.state
			return res, nil
		}
	}
}

func (b *Battle) transition(to State) {
	b.logger.Debug("state transition",
		zap.Int("turn", b.turn),
		zap.Stringer("from", b.state),
		zap.Stringer("to", to),
	)
	b.state = to
}

// resolvePlayer applies the player's action. Rejected actions become
// narration events and change no state.
func (b *Battle) resolvePlayer(a Action) []narration.Event {
	switch a.Type {
	case ActionAttack:
		hit := b.player.Attack(b.boss, b.roller)
		events := []narration.Event{ability.AttackEvent(b.player, b.boss, hit.Damage)}
		if hit.Defeated {
			events = append(events, ability.DefeatEvent(b.boss))
		}
		return events

	case ActionAbility:
		if a.Malformed {
			return []narration.Event{{Kind: narration.KindAbilityRejected, Actor: b.player.Name, Text: "Invalid input. Must be a number."}}
		}
		effect, err := b.resolver.Resolve(b.player, a.Index, b.boss)
		if err != nil {
			b.logger.Debug("ability rejected", zap.Int("index", a.Index), zap.Error(err))
			text := "Selected ability not implemented."
			if errors.Is(err, ability.ErrInvalidSelection) {
				text = "Invalid ability number. No action taken."
			}
			return []narration.Event{{Kind: narration.KindAbilityRejected, Actor: b.player.Name, Amount: a.Index, Text: text}}
		}
		return effect.Events

	case ActionHeal:
		if a.Malformed {
			return []narration.Event{{Kind: narration.KindHealRejected, Actor: b.player.Name, Text: "Invalid heal amount. Please enter an integer."}}
		}
		if _, err := b.player.Heal(a.Amount); err != nil {
			b.logger.Debug("heal rejected", zap.Int("amount", a.Amount), zap.Error(err))
			return []narration.Event{{Kind: narration.KindHealRejected, Actor: b.player.Name, Amount: a.Amount, Text: "Heal amount must be positive."}}
		}
		return []narration.Event{ability.HealEvent(b.player, a.Amount)}

	case ActionInspect:
		return []narration.Event{
			{Kind: narration.KindStats, Actor: b.player.Name, Text: b.player.Stats()},
			{Kind: narration.KindStats, Actor: b.boss.Name, Text: b.boss.Stats()},
		}

	default:
		return []narration.Event{{Kind: narration.KindInvalidChoice, Actor: b.player.Name, Text: "Invalid choice. Try again."}}
	}
}

func victoryText(boss, player *character.Character) string {
	if boss.ClassName == "" {
		return fmt.Sprintf("%s has been defeated by %s!", boss.Name, player.Name)
	}
	return fmt.Sprintf("The %s has been defeated by %s!", boss.Title(), player.Name)
}

func lossText(player, boss *character.Character) string {
	if boss.ClassName == "" {
		return fmt.Sprintf("%s has been defeated by %s!", player.Name, boss.Name)
	}
	return fmt.Sprintf("%s has been defeated by the %s!", player.Name, boss.Title())
}
