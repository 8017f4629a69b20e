package character

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

// FromClass constructs a full-health Character of class def.
//
// Precondition: def must be non-nil and valid.
// Postcondition: Health == MaxHealth == def.BaseHealth and AttackPower == def.BaseAttackPower.
func FromClass(def *ruleset.ClassDefinition, name string) *Character {
	if def == nil {
		panic("character: FromClass precondition violated: def must be non-nil")
	}
	return &Character{
		ID:          uuid.New().String(),
		Name:        name,
		ClassID:     def.ID,
		ClassName:   def.Name,
		Health:      def.BaseHealth,
		MaxHealth:   def.BaseHealth,
		AttackPower: def.BaseAttackPower,
	}
}

// Create builds a player character from the menu number of its class.
// Unknown numbers fall back to the registry's default class instead of failing.
//
// Precondition: reg must be non-nil and hold a default class.
// Postcondition: Returns a non-nil Character; defaulted is true iff classNumber was unknown.
func Create(reg *ruleset.Registry, classNumber int, name string) (c *Character, defaulted bool) {
	def, defaulted := reg.Resolve(classNumber)
	return FromClass(def, name), defaulted
}

// CreateByID builds a character from a class id.
//
// Postcondition: Returns a Character, or an error wrapping ruleset.ErrUnknownClass.
func CreateByID(reg *ruleset.Registry, classID, name string) (*Character, error) {
	def, ok := reg.Class(classID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ruleset.ErrUnknownClass, classID)
	}
	return FromClass(def, name), nil
}

// NewBoss builds the boss character registered in reg.
//
// Postcondition: Returns the boss at full health, or an error wrapping ruleset.ErrUnknownClass.
func NewBoss(reg *ruleset.Registry, name string) (*Character, error) {
	def, ok := reg.Boss()
	if !ok {
		return nil, fmt.Errorf("%w: no boss class registered", ruleset.ErrUnknownClass)
	}
	if name == "" {
		name = def.Name
	}
	return FromClass(def, name), nil
}
