// Package ability resolves class abilities against characters. Abilities are
// data; behaviour lives in one handler per ruleset.Archetype.
package ability

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/evilwizard/internal/game/character"
	"github.com/cory-johannsen/evilwizard/internal/game/narration"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

var (
	// ErrInvalidSelection is returned for an ability index outside 1..6.
	ErrInvalidSelection = errors.New("invalid ability selection")
	// ErrAbilityUnavailable is returned when the ability does not belong to the actor's class.
	ErrAbilityUnavailable = errors.New("ability not available")
	// ErrNoTarget is returned when a targeted ability is used without an opponent.
	ErrNoTarget = errors.New("ability requires a target")
)

// Roller is the subset of dice.Roller the resolver draws from.
type Roller interface {
	RollAttack(base int) int
	RollBonus(min, max int) int
}

// EffectResult is the transient outcome of resolving one ability.
type EffectResult struct {
	AbilityID string
	Archetype ruleset.Archetype
	// Damage is the total reported damage dealt to the target (>= 0).
	Damage int
	// Bonus is the rolled bonus value, if the ability has a bonus range.
	Bonus int
	// Hits holds each attack roll for multi_hit abilities.
	Hits []int
	// SelfHealed is the health the actor actually regained (>= 0).
	SelfHealed        int
	SelfDamage        int
	AttackPowerGained int
	ShieldRaised      bool
	// NarrativeOnly is true when the ability changed no state.
	NarrativeOnly  bool
	TargetDefeated bool
	Events         []narration.Event
}

// Catalog resolves abilities of every class in a ruleset.Registry.
type Catalog struct {
	reg      *ruleset.Registry
	roller   Roller
	logger   *zap.Logger
	handlers map[ruleset.Archetype]handler
}

// NewCatalog creates a Catalog backed by reg and roller.
//
// Precondition: reg and roller must be non-nil. A nil logger disables logging.
// Postcondition: Every valid ruleset.Archetype has a handler.
func NewCatalog(reg *ruleset.Registry, roller Roller, logger *zap.Logger) *Catalog {
	if reg == nil || roller == nil {
		panic("ability: NewCatalog precondition violated: reg and roller must be non-nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{reg: reg, roller: roller, logger: logger, handlers: defaultHandlers()}
}

// Abilities returns the ordered ability descriptors of c's class, or nil if
// the class is not registered.
func (cat *Catalog) Abilities(c *character.Character) []*ruleset.AbilityDescriptor {
	def, ok := cat.reg.Class(c.ClassID)
	if !ok {
		return nil
	}
	return def.Abilities
}

// ListAbilities returns the display names of c's abilities in menu order.
func (cat *Catalog) ListAbilities(c *character.Character) []string {
	abilities := cat.Abilities(c)
	names := make([]string, len(abilities))
	for i, a := range abilities {
		names[i] = a.DisplayName
	}
	return names
}

// Resolve uses the ability at 1-based index of actor's class against target.
// Self-targeted abilities ignore target, which may then be nil.
//
// Postcondition: On error no character state has changed.
func (cat *Catalog) Resolve(actor *character.Character, index int, target *character.Character) (EffectResult, error) {
	abilities := cat.Abilities(actor)
	if abilities == nil {
		return EffectResult{}, fmt.Errorf("%w: class %q has no abilities", ErrAbilityUnavailable, actor.ClassID)
	}
	if index < 1 || index > len(abilities) {
		return EffectResult{}, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidSelection, index, len(abilities))
	}
	return cat.resolve(actor, abilities[index-1], target)
}

// ResolveByID uses the ability with the given id of actor's class against target.
//
// Postcondition: Returns ErrAbilityUnavailable with no state change when the
// id is not one of actor's class abilities.
func (cat *Catalog) ResolveByID(actor *character.Character, abilityID string, target *character.Character) (EffectResult, error) {
	def, ok := cat.reg.Class(actor.ClassID)
	if !ok {
		return EffectResult{}, fmt.Errorf("%w: class %q is not registered", ErrAbilityUnavailable, actor.ClassID)
	}
	a, ok := def.Ability(abilityID)
	if !ok {
		return EffectResult{}, fmt.Errorf("%w: %q is not a %s ability", ErrAbilityUnavailable, abilityID, def.Name)
	}
	return cat.resolve(actor, a, target)
}

func (cat *Catalog) resolve(actor *character.Character, a *ruleset.AbilityDescriptor, target *character.Character) (EffectResult, error) {
	if a.Archetype.Targeted() && target == nil {
		return EffectResult{}, fmt.Errorf("%w: %s", ErrNoTarget, a.DisplayName)
	}
	h, ok := cat.handlers[a.Archetype]
	if !ok {
		return EffectResult{}, fmt.Errorf("%w: no handler for archetype %q", ErrAbilityUnavailable, a.Archetype)
	}
	res := &resolution{
		actor:  actor,
		target: target,
		desc:   a,
		roller: cat.roller,
		result: EffectResult{AbilityID: a.ID, Archetype: a.Archetype},
	}
	h(res)
	cat.logger.Debug("ability resolved",
		zap.String("actor", actor.Name),
		zap.String("ability", a.ID),
		zap.String("archetype", string(a.Archetype)),
		zap.Int("damage", res.result.Damage),
		zap.Int("self_healed", res.result.SelfHealed),
		zap.Int("self_damage", res.result.SelfDamage),
		zap.Int("attack_power_gained", res.result.AttackPowerGained),
	)
	return res.result, nil
}

// resolution carries the state of one ability being resolved.
type resolution struct {
	actor  *character.Character
	target *character.Character
	desc   *ruleset.AbilityDescriptor
	roller Roller
	result EffectResult
}

func (r *resolution) targetName() string {
	if r.target == nil {
		return "their foe"
	}
	return r.target.Name
}

func (r *resolution) rollBonus() int {
	return r.roller.RollBonus(r.desc.Bonus.Min, r.desc.Bonus.Max)
}

func (r *resolution) emit(e narration.Event) {
	r.result.Events = append(r.result.Events, e)
}

// announce emits the ability's flavor line with amount substituted.
func (r *resolution) announce(amount int) {
	text := r.desc.Narration
	if text == "" {
		text = "{actor} uses " + r.desc.DisplayName + "!"
	}
	r.emit(narration.Event{
		Kind:   narration.KindAbility,
		Actor:  r.actor.Name,
		Target: r.targetName(),
		Amount: amount,
		Text:   narration.Fill(text, r.actor.Name, r.targetName(), strconv.Itoa(amount)),
	})
}

// strike applies damage to the target and narrates the hit, and the defeat
// the first time the target reaches zero.
func (r *resolution) strike(damage int, text string) {
	wasDefeated := r.target.IsDefeated()
	r.target.ApplyDamage(damage)
	r.emit(narration.Event{
		Kind:   narration.KindAttack,
		Actor:  r.actor.Name,
		Target: r.target.Name,
		Amount: damage,
		Text:   text,
	})
	if !wasDefeated && r.target.IsDefeated() {
		r.result.TargetDefeated = true
		r.emit(DefeatEvent(r.target))
	}
}

// healSelf heals the actor and narrates it. Non-positive amounts are skipped.
func (r *resolution) healSelf(amount int) {
	gained, err := r.actor.Heal(amount)
	if err != nil {
		return
	}
	r.result.SelfHealed += gained
	r.emit(HealEvent(r.actor, amount))
}

// DefeatEvent narrates c reaching zero health.
func DefeatEvent(c *character.Character) narration.Event {
	return narration.Event{
		Kind:   narration.KindDefeat,
		Target: c.Name,
		Text:   fmt.Sprintf("%s has been defeated!", c.Name),
	}
}

// HealEvent narrates c healing for amount, reporting the resulting health.
func HealEvent(c *character.Character, amount int) narration.Event {
	return narration.Event{
		Kind:   narration.KindHeal,
		Actor:  c.Name,
		Amount: amount,
		Text:   fmt.Sprintf("%s heals for %d. Current health: %d/%d", c.Name, amount, c.Health, c.MaxHealth),
	}
}

// AttackEvent narrates a plain attack.
func AttackEvent(actor, target *character.Character, damage int) narration.Event {
	return narration.Event{
		Kind:   narration.KindAttack,
		Actor:  actor.Name,
		Target: target.Name,
		Amount: damage,
		Text:   fmt.Sprintf("%s attacks %s for %d damage!", actor.Name, target.Name, damage),
	}
}
