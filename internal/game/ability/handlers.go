package ability

import (
	"fmt"

	"github.com/cory-johannsen/evilwizard/internal/game/narration"
	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

// handler applies one archetype's mechanics to a resolution.
type handler func(r *resolution)

func defaultHandlers() map[ruleset.Archetype]handler {
	return map[ruleset.Archetype]handler{
		ruleset.ArchetypeDirectDamage:  directDamage,
		ruleset.ArchetypeMultiHit:      multiHit,
		ruleset.ArchetypeHeal:          heal,
		ruleset.ArchetypeSelfBuff:      selfBuff,
		ruleset.ArchetypeSelfDamage:    selfDamage,
		ruleset.ArchetypeLifeDrain:     lifeDrain,
		ruleset.ArchetypeDefensiveFlag: defensiveFlag,
		ruleset.ArchetypeNarrative:     narrativeOnly,
	}
}

// directDamage: attack roll times multiplier plus bonus, applied as one total.
func directDamage(r *resolution) {
	bonus := r.rollBonus()
	roll := r.roller.RollAttack(r.actor.AttackPower)
	total := roll*r.desc.AttackMultiplier() + bonus

	r.result.Bonus = bonus
	r.result.Damage = total
	r.announce(total)
	r.strike(total, fmt.Sprintf("%s hits %s for %d damage! (%s + %d bonus)",
		r.actor.Name, r.target.Name, total, attackTerm(roll, r.desc.AttackMultiplier()), bonus))
}

func attackTerm(roll, multiplier int) string {
	if multiplier == 1 {
		return fmt.Sprintf("%d", roll)
	}
	return fmt.Sprintf("%d x%d", roll, multiplier)
}

// multiHit: every hit is applied even after the target drops to zero.
func multiHit(r *resolution) {
	r.announce(0)
	for i := 0; i < r.desc.Hits; i++ {
		dmg := r.roller.RollAttack(r.actor.AttackPower)
		r.result.Hits = append(r.result.Hits, dmg)
		r.result.Damage += dmg
		r.strike(dmg, fmt.Sprintf("%s attacks %s for %d damage!", r.actor.Name, r.target.Name, dmg))
	}
}

func heal(r *resolution) {
	amount := r.rollBonus()
	r.result.Bonus = amount
	r.announce(amount)
	r.healSelf(amount)
}

func selfBuff(r *resolution) {
	amount := r.rollBonus()
	r.actor.RaiseAttackPower(amount)
	r.result.Bonus = amount
	r.result.AttackPowerGained = amount
	r.announce(amount)
	r.emit(narration.Event{
		Kind:   narration.KindBuff,
		Actor:  r.actor.Name,
		Amount: amount,
		Text:   fmt.Sprintf("%s's attack power rises to %d.", r.actor.Name, r.actor.AttackPower),
	})
}

func selfDamage(r *resolution) {
	cost := r.rollBonus()
	before := r.actor.Health
	r.actor.ApplyDamage(cost)
	r.result.Bonus = cost
	r.result.SelfDamage = before - r.actor.Health
	r.announce(cost)
	r.emit(narration.Event{
		Kind:   narration.KindSelfDamage,
		Actor:  r.actor.Name,
		Amount: cost,
		Text:   fmt.Sprintf("%s's health drops to %d/%d.", r.actor.Name, r.actor.Health, r.actor.MaxHealth),
	})
	if before > 0 && r.actor.IsDefeated() {
		r.emit(DefeatEvent(r.actor))
	}
}

// lifeDrain: direct damage, then the actor heals half the bonus.
func lifeDrain(r *resolution) {
	directDamage(r)
	r.healSelf(r.result.Bonus / 2)
}

// defensiveFlag raises ShieldActive. No damage calculation consults the flag.
func defensiveFlag(r *resolution) {
	r.actor.ShieldActive = true
	r.result.ShieldRaised = true
	r.announce(0)
}

// narrativeOnly changes nothing. A bonus range, when present, is rolled for
// the narration only.
func narrativeOnly(r *resolution) {
	amount := 0
	if r.desc.Bonus != nil {
		amount = r.rollBonus()
		r.result.Bonus = amount
	}
	r.result.NarrativeOnly = true
	r.announce(amount)
}
