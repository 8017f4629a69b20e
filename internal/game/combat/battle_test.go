package combat_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/evilwizard/internal/game/ability"
	"github.com/cory-johannsen/evilwizard/internal/game/ai"
	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/combat"
	"github.com/cory-johannsen/evilwizard/internal/game/dice"
	"github.com/cory-johannsen/evilwizard/internal/game/narration"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

// fixedSrc returns val for every Intn call, clamped into range.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

// idlePolicy never acts and counts its turns.
type idlePolicy struct{ calls int }

func (p *idlePolicy) TakeTurn(_, _ *character.Character, _ ai.Resolver) (ai.Turn, error) {
	p.calls++
	return ai.Turn{}, nil
}

type fixture struct {
	reg    *ruleset.Registry
	player *character.Character
	boss   *character.Character
	cat    *ability.Catalog
	roller *dice.Roller
}

func newFixture(t testing.TB, classNumber int, src dice.Source) fixture {
	t.Helper()
	reg, err := ruleset.LoadDefaultRegistry()
	require.NoError(t, err)
	player, _ := character.Create(reg, classNumber, "Hero")
	boss, err := character.NewBoss(reg, "The Dark Wizard")
	require.NoError(t, err)
	roller := dice.NewRoller(src, nil)
	return fixture{reg: reg, player: player, boss: boss, cat: ability.NewCatalog(reg, roller, nil), roller: roller}
}

func (f fixture) battle(policy combat.BossPolicy) *combat.Battle {
	return combat.NewBattle(f.player, f.boss, f.cat, f.roller, policy, nil)
}

func (f fixture) wizardBattle() *combat.Battle {
	return f.battle(ai.NewWizardPolicy(ai.DefaultRegen, f.roller, nil))
}

func kinds(events []narration.Event) []narration.Kind {
	out := make([]narration.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func hasKind(events []narration.Event, k narration.Kind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestNewBattle_StartsInPlayerTurn(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{})
	b := f.wizardBattle()
	assert.Equal(t, combat.StatePlayerTurn, b.State())
	assert.Equal(t, combat.OutcomeNone, b.Outcome())
	assert.NotEmpty(t, b.ID)

	v := b.View()
	assert.Equal(t, 1, v.Turn)
	assert.Equal(t, 140, v.Player.Health)
	assert.Equal(t, 150, v.Boss.MaxHealth)
	assert.Len(t, v.Abilities, 6)
}

func TestNewBattle_Preconditions(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{})
	p := &idlePolicy{}
	assert.Panics(t, func() { combat.NewBattle(nil, f.boss, f.cat, f.roller, p, nil) })
	assert.Panics(t, func() { combat.NewBattle(f.player, f.boss, nil, f.roller, p, nil) })
	assert.Panics(t, func() { combat.NewBattle(f.player, f.boss, f.cat, f.roller, nil, nil) })
}

func TestStep_WarriorAttackThenBossTurn(t *testing.T) {
	// Every draw is the lowest value: player attack 20, boss picks
	// Summon Minions, bonus 3, attack 10.
	f := newFixture(t, 1, fixedSrc{val: 0})
	b := f.wizardBattle()

	res, err := b.Step(combat.Attack())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turn)
	assert.Equal(t, combat.StatePlayerTurn, res.State)
	require.NotNil(t, res.Boss)
	assert.Equal(t, 5, res.Boss.Regenerated)
	assert.Equal(t, "summon_minions", res.Boss.Effect.AbilityID)
	assert.Equal(t, 135, f.boss.Health)
	assert.Equal(t, 127, f.player.Health)

	assert.Equal(t, []narration.Kind{
		narration.KindTurn, narration.KindAttack,
		narration.KindTurn, narration.KindRegenerate, narration.KindAbility, narration.KindAttack,
	}, kinds(res.Events))
	assert.Equal(t, "Hero attacks The Dark Wizard for 20 damage!", res.Events[1].Text)
}

func TestStep_VictorySkipsBossTurn(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{val: 10})
	f.boss.Health = 10
	policy := &idlePolicy{}
	b := f.battle(policy)

	res, err := b.Step(combat.Attack())
	require.NoError(t, err)
	assert.Equal(t, combat.StateVictory, res.State)
	assert.Nil(t, res.Boss)
	assert.Equal(t, 0, policy.calls)
	assert.Equal(t, 0, f.boss.Health, "a defeated boss does not regenerate")
	assert.Equal(t, combat.OutcomeVictory, b.Outcome())
	assert.Equal(t, []narration.Kind{
		narration.KindTurn, narration.KindAttack, narration.KindDefeat, narration.KindVictory,
	}, kinds(res.Events))
	assert.Equal(t, "The Evil Wizard The Dark Wizard has been defeated by Hero!", res.Events[3].Text)

	_, err = b.Step(combat.Attack())
	assert.True(t, errors.Is(err, combat.ErrBattleOver))
	assert.Equal(t, 1, b.Turn())
}

func TestStep_AbilityVictory(t *testing.T) {
	f := newFixture(t, 5, fixedSrc{val: 0})
	f.boss.Health = 20
	policy := &idlePolicy{}
	b := f.battle(policy)

	res, err := b.Step(combat.UseAbility(1))
	require.NoError(t, err)
	assert.Equal(t, combat.StateVictory, res.State)
	assert.Equal(t, 0, policy.calls)
}

func TestStep_InvalidAbilityIndexStillRunsBossTurn(t *testing.T) {
	// Boss picks Dark Curse, which changes nothing.
	f := newFixture(t, 1, fixedSrc{val: 1})
	b := f.wizardBattle()

	res, err := b.Step(combat.UseAbility(9))
	require.NoError(t, err)
	assert.Equal(t, combat.StatePlayerTurn, res.State)
	require.NotNil(t, res.Boss)
	assert.Equal(t, "dark_curse", res.Boss.Effect.AbilityID)
	assert.Equal(t, 140, f.player.Health)
	assert.Equal(t, 150, f.boss.Health)

	require.True(t, hasKind(res.Events, narration.KindAbilityRejected))
	assert.Equal(t, "Invalid ability number. No action taken.", res.Events[1].Text)
}

func TestStep_InspectConsumesTurn(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{val: 1})
	policy := &idlePolicy{}
	b := f.battle(policy)

	res, err := b.Step(combat.Inspect())
	require.NoError(t, err)
	assert.Equal(t, 1, policy.calls)
	assert.Equal(t, "Hero's Stats - Health: 140/140, Attack Power: 25", res.Events[1].Text)
	assert.Equal(t, "The Dark Wizard's Stats - Health: 150/150, Attack Power: 15", res.Events[2].Text)

	_, err = b.Step(combat.Inspect())
	require.NoError(t, err)
	assert.Equal(t, 2, policy.calls)
	assert.Equal(t, 2, b.Turn())
}

func TestStep_Heal(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{})
	f.player.Health = 100
	b := f.battle(&idlePolicy{})

	res, err := b.Step(combat.Heal(25))
	require.NoError(t, err)
	assert.Equal(t, 125, f.player.Health)
	assert.Equal(t, "Hero heals for 25. Current health: 125/140", res.Events[1].Text)
}

func TestStep_RejectedHealStillRunsBossTurn(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{})
	f.player.Health = 100
	policy := &idlePolicy{}
	b := f.battle(policy)

	for _, amount := range []int{0, -10} {
		res, err := b.Step(combat.Heal(amount))
		require.NoError(t, err)
		assert.Equal(t, narration.KindHealRejected, res.Events[1].Kind)
		assert.Equal(t, 100, f.player.Health)
	}
	assert.Equal(t, 2, policy.calls)
}

func TestStep_InvalidChoice(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{})
	policy := &idlePolicy{}
	b := f.battle(policy)

	res, err := b.Step(combat.Invalid())
	require.NoError(t, err)
	assert.Equal(t, "Invalid choice. Try again.", res.Events[1].Text)
	assert.Equal(t, 1, policy.calls)
}

func TestStep_MalformedInputStillRunsBossTurn(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{})
	f.player.Health = 100
	policy := &idlePolicy{}
	b := f.battle(policy)

	res, err := b.Step(combat.ParseAbilityChoice("fire"))
	require.NoError(t, err)
	assert.Equal(t, narration.KindAbilityRejected, res.Events[1].Kind)
	assert.Equal(t, "Invalid input. Must be a number.", res.Events[1].Text)

	res, err = b.Step(combat.ParseHealChoice("lots"))
	require.NoError(t, err)
	assert.Equal(t, narration.KindHealRejected, res.Events[1].Kind)
	assert.Equal(t, "Invalid heal amount. Please enter an integer.", res.Events[1].Text)

	assert.Equal(t, 2, policy.calls)
	assert.Equal(t, 100, f.player.Health)
	assert.Equal(t, 150, f.boss.Health)
}

func TestParseChoices(t *testing.T) {
	assert.Equal(t, combat.UseAbility(4), combat.ParseAbilityChoice(" 4 "))
	assert.Equal(t, combat.UseAbility(0), combat.ParseAbilityChoice("0"))
	assert.Equal(t, combat.MalformedAbility(), combat.ParseAbilityChoice("fire"))
	assert.Equal(t, combat.Heal(25), combat.ParseHealChoice("25"))
	assert.Equal(t, combat.Heal(-3), combat.ParseHealChoice("-3"))
	assert.Equal(t, combat.MalformedHeal(), combat.ParseHealChoice(""))
}

func TestVictoryAndLossText_WithoutClassName(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{val: 10})
	f.boss.ClassName = ""
	f.boss.Health = 10
	res, err := f.battle(&idlePolicy{}).Step(combat.Attack())
	require.NoError(t, err)
	assert.Equal(t, "The Dark Wizard has been defeated by Hero!", res.Events[len(res.Events)-1].Text)
}

func TestStep_PlayerDefeated(t *testing.T) {
	f := newFixture(t, 1, fixedSrc{val: 0})
	f.player.Health = 5
	b := f.wizardBattle()

	res, err := b.Step(combat.Inspect())
	require.NoError(t, err)
	assert.Equal(t, combat.StateDefeat, res.State)
	assert.Equal(t, combat.OutcomeDefeat, b.Outcome())
	assert.Equal(t, 0, f.player.Health)
	last := res.Events[len(res.Events)-1]
	assert.Equal(t, narration.KindLoss, last.Kind)
	assert.Equal(t, "Hero has been defeated by the Evil Wizard The Dark Wizard!", last.Text)
}

func TestStep_SelfInflictedDefeatWaitsForBossTurn(t *testing.T) {
	// Dark Pact costs 3+1 health; the boss then casts Dark Curse.
	f := newFixture(t, 14, fixedSrc{val: 1})
	f.player.Health = 3
	policy := ai.NewWizardPolicy(ai.DefaultRegen, f.roller, nil)
	b := f.battle(policy)

	res, err := b.Step(combat.UseAbility(2))
	require.NoError(t, err)
	require.NotNil(t, res.Boss)
	assert.Equal(t, combat.StateDefeat, res.State)
}

func TestStep_LogsStateTransitions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture(t, 1, fixedSrc{val: 1})
	b := combat.NewBattle(f.player, f.boss, f.cat, f.roller, &idlePolicy{}, zap.New(core))

	_, err := b.Step(combat.Attack())
	require.NoError(t, err)
	transitions := logs.FilterMessage("state transition").All()
	assert.Len(t, transitions, 6)
	assert.Equal(t, b.ID, transitions[0].ContextMap()["battle_id"])
}

func TestParseHealAmount(t *testing.T) {
	n, err := combat.ParseHealAmount(" 20 ")
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = combat.ParseHealAmount("-4")
	require.NoError(t, err)
	assert.Equal(t, -4, n)

	_, err = combat.ParseHealAmount("lots")
	assert.True(t, errors.Is(err, character.ErrInvalidHealAmount))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "attack", combat.Attack().String())
	assert.Equal(t, "ability 3", combat.UseAbility(3).String())
	assert.Equal(t, "heal 10", combat.Heal(10).String())
	assert.Equal(t, "inspect", combat.Inspect().String())
	assert.Equal(t, "invalid", combat.Invalid().String())
	assert.Equal(t, "heal (malformed)", combat.MalformedHeal().String())
}

func genAction() *rapid.Generator[combat.Action] {
	return rapid.Custom(func(t *rapid.T) combat.Action {
		switch rapid.IntRange(0, 6).Draw(t, "type") {
		case 0:
			return combat.Attack()
		case 1:
			return combat.UseAbility(rapid.IntRange(-1, 8).Draw(t, "index"))
		case 2:
			return combat.Heal(rapid.IntRange(-5, 60).Draw(t, "amount"))
		case 3:
			return combat.Inspect()
		case 4:
			return combat.MalformedAbility()
		case 5:
			return combat.MalformedHeal()
		default:
			return combat.Invalid()
		}
	})
}

// Property: health stays clamped for both characters after every step, the
// battle only stops in a terminal state whose loser has zero health, and a
// finished battle rejects further steps.
func TestStep_Property_StateMachineInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t, rapid.IntRange(1, 15).Draw(rt, "class"), dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		b := f.wizardBattle()
		actions := rapid.SliceOfN(genAction(), 1, 80).Draw(rt, "actions")
		for _, a := range actions {
			if b.State().Terminal() {
				break
			}
			res, err := b.Step(a)
			if err != nil {
				rt.Fatalf("step: %v", err)
			}
			for _, c := range []*character.Character{f.player, f.boss} {
				if c.Health < 0 || c.Health > c.MaxHealth {
					rt.Fatalf("%s health %d outside [0,%d]", c.Name, c.Health, c.MaxHealth)
				}
			}
			switch res.State {
			case combat.StateVictory:
				if f.boss.Health != 0 || res.Boss != nil {
					rt.Fatalf("victory with boss health %d", f.boss.Health)
				}
			case combat.StateDefeat:
				if f.player.Health != 0 {
					rt.Fatalf("defeat with player health %d", f.player.Health)
				}
			case combat.StatePlayerTurn:
				if res.Boss == nil {
					rt.Fatalf("boss skipped a turn")
				}
			default:
				rt.Fatalf("step ended in %s", res.State)
			}
		}
		if b.State().Terminal() {
			if _, err := b.Step(combat.Attack()); !errors.Is(err, combat.ErrBattleOver) {
				rt.Fatalf("expected ErrBattleOver, got %v", err)
			}
		}
	})
}
