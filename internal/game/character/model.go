// Package character defines the combatant entity and its attack/heal primitives.
package character

import (
	"errors"
	"fmt"
)

// ErrInvalidHealAmount is returned by Heal when the amount is not positive.
var ErrInvalidHealAmount = errors.New("heal amount must be positive")

// Roller is the subset of dice.Roller used for attacks.
type Roller interface {
	RollAttack(base int) int
}

// Character is a player or boss taking part in a battle.
//
// Invariant: 0 <= Health <= MaxHealth; MaxHealth > 0; AttackPower > 0.
type Character struct {
	// ID correlates log lines; it carries no game meaning.
	ID      string
	Name    string
	ClassID string
	// ClassName is the class display name, e.g. "Evil Wizard".
	ClassName string

	Health      int
	MaxHealth   int
	AttackPower int

	// ShieldActive is raised by defensive abilities. Nothing reads it yet;
	// damage is never reduced by it.
	ShieldActive bool
}

// Title returns the class name followed by the character name, e.g.
// "Evil Wizard The Dark Wizard", or just the name when the class name is unknown.
func (c *Character) Title() string {
	if c.ClassName == "" {
		return c.Name
	}
	return c.ClassName + " " + c.Name
}

// Hit is the outcome of a single attack.
type Hit struct {
	Damage   int
	Defeated bool
}

// IsDefeated reports whether Health has reached zero.
func (c *Character) IsDefeated() bool { return c.Health == 0 }

// ApplyDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: 0 <= Health <= MaxHealth.
func (c *Character) ApplyDamage(amount int) {
	if amount < 0 {
		panic("character: ApplyDamage precondition violated: amount must be >= 0")
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// Restore raises Health by amount, capped at MaxHealth, and returns the
// health actually gained.
//
// Precondition: amount >= 0.
// Postcondition: 0 <= Health <= MaxHealth; result >= 0.
func (c *Character) Restore(amount int) int {
	if amount < 0 {
		panic("character: Restore precondition violated: amount must be >= 0")
	}
	before := c.Health
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	return c.Health - before
}

// Attack rolls damage from AttackPower and applies it to target.
//
// Precondition: target and r must be non-nil.
// Postcondition: target.Health is reduced by Damage, floored at zero;
// Defeated is true iff target.Health == 0.
func (c *Character) Attack(target *Character, r Roller) Hit {
	dmg := r.RollAttack(c.AttackPower)
	target.ApplyDamage(dmg)
	return Hit{Damage: dmg, Defeated: target.IsDefeated()}
}

// Heal restores amount health, capped at MaxHealth.
//
// Postcondition: On amount <= 0 returns ErrInvalidHealAmount and Health is
// unchanged; otherwise returns the health actually gained.
func (c *Character) Heal(amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidHealAmount, amount)
	}
	return c.Restore(amount), nil
}

// RaiseAttackPower permanently increases AttackPower by amount.
//
// Precondition: amount >= 0.
func (c *Character) RaiseAttackPower(amount int) {
	if amount < 0 {
		panic("character: RaiseAttackPower precondition violated: amount must be >= 0")
	}
	c.AttackPower += amount
}

// Stats renders the one-line stat summary shown by the inspect action.
func (c *Character) Stats() string {
	return fmt.Sprintf("%s's Stats - Health: %d/%d, Attack Power: %d", c.Name, c.Health, c.MaxHealth, c.AttackPower)
}
