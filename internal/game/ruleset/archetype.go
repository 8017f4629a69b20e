package ruleset

// Archetype is the mechanical category of an ability. The combat resolver
// dispatches on Archetype; abilities never carry behaviour of their own.
type Archetype string

const (
	// ArchetypeDirectDamage is an attack plus a rolled bonus, applied as one total.
	ArchetypeDirectDamage Archetype = "direct_damage"
	// ArchetypeMultiHit is Hits independent attacks against the same target.
	ArchetypeMultiHit Archetype = "multi_hit"
	// ArchetypeHeal heals the user by a rolled amount.
	ArchetypeHeal Archetype = "heal"
	// ArchetypeSelfBuff permanently raises the user's attack power by a rolled amount.
	ArchetypeSelfBuff Archetype = "self_buff"
	// ArchetypeSelfDamage costs the user a rolled amount of health.
	ArchetypeSelfDamage Archetype = "self_damage"
	// ArchetypeLifeDrain is a direct damage ability that heals the user by half the bonus.
	ArchetypeLifeDrain Archetype = "life_drain"
	// ArchetypeDefensiveFlag raises the user's shield flag. Nothing consumes the flag.
	ArchetypeDefensiveFlag Archetype = "defensive_flag"
	// ArchetypeNarrative has no mechanical effect.
	ArchetypeNarrative Archetype = "narrative"
)

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeDirectDamage, ArchetypeMultiHit, ArchetypeHeal, ArchetypeSelfBuff,
		ArchetypeSelfDamage, ArchetypeLifeDrain, ArchetypeDefensiveFlag, ArchetypeNarrative:
		return true
	}
	return false
}

// Targeted reports whether abilities of this archetype need an opponent.
//
// Postcondition: true exactly for direct_damage, multi_hit and life_drain.
func (a Archetype) Targeted() bool {
	switch a {
	case ArchetypeDirectDamage, ArchetypeMultiHit, ArchetypeLifeDrain:
		return true
	}
	return false
}

// NeedsBonus reports whether abilities of this archetype must declare a bonus range.
func (a Archetype) NeedsBonus() bool {
	switch a {
	case ArchetypeDirectDamage, ArchetypeHeal, ArchetypeSelfBuff, ArchetypeSelfDamage, ArchetypeLifeDrain:
		return true
	}
	return false
}
