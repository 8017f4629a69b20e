package ruleset

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// AbilitiesPerClass is the exact number of abilities every class defines.
const AbilitiesPerClass = 6

// ErrUnknownClass is returned when a class lookup misses.
var ErrUnknownClass = errors.New("unknown class")

// Range is an inclusive [Min, Max] integer interval. In YAML it is written
// as a two element sequence, e.g. `bonus: [3, 10]`.
type Range struct {
	Min int
	Max int
}

// UnmarshalYAML decodes a two element sequence into r.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []int
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("range must have exactly 2 values, got %d", len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// String returns "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// AbilityDescriptor is the immutable description of one class ability.
type AbilityDescriptor struct {
	ID          string    `yaml:"id"`
	DisplayName string    `yaml:"name"`
	Archetype   Archetype `yaml:"archetype"`
	// Bonus is the extra damage/heal/buff/cost range; nil when not applicable.
	Bonus *Range `yaml:"bonus"`
	// Hits is the number of attacks for multi_hit abilities.
	Hits int `yaml:"hits"`
	// Multiplier scales the attack part of a direct_damage total. Zero means 1.
	Multiplier int `yaml:"multiplier"`
	// Narration is the flavor line. {actor}, {target} and {amount} are substituted.
	Narration string `yaml:"narration"`
}

// AttackMultiplier returns Multiplier, defaulting to 1.
func (a *AbilityDescriptor) AttackMultiplier() int {
	if a.Multiplier <= 0 {
		return 1
	}
	return a.Multiplier
}

// Validate checks the archetype-specific invariants of a.
//
// Postcondition: Returns nil iff a is resolvable by the combat resolver.
func (a *AbilityDescriptor) Validate() error {
	if a.ID == "" {
		return errors.New("ability id must not be empty")
	}
	if !a.Archetype.Valid() {
		return fmt.Errorf("ability %q: unknown archetype %q", a.ID, a.Archetype)
	}
	if a.Archetype.NeedsBonus() && a.Bonus == nil {
		return fmt.Errorf("ability %q: archetype %s requires a bonus range", a.ID, a.Archetype)
	}
	if a.Archetype == ArchetypeDefensiveFlag && a.Bonus != nil {
		return fmt.Errorf("ability %q: archetype %s takes no bonus range", a.ID, a.Archetype)
	}
	if a.Bonus != nil {
		if a.Bonus.Min < 0 || a.Bonus.Min > a.Bonus.Max {
			return fmt.Errorf("ability %q: bonus range %s must satisfy 0 <= min <= max", a.ID, a.Bonus)
		}
		if a.Archetype == ArchetypeHeal && a.Bonus.Min < 1 {
			return fmt.Errorf("ability %q: heal range %s must be positive", a.ID, a.Bonus)
		}
	}
	if a.Archetype == ArchetypeMultiHit {
		if a.Hits < 2 {
			return fmt.Errorf("ability %q: multi_hit needs hits >= 2, got %d", a.ID, a.Hits)
		}
	} else if a.Hits != 0 {
		return fmt.Errorf("ability %q: hits only applies to multi_hit", a.ID)
	}
	if a.Multiplier < 0 || (a.Multiplier > 1 && a.Archetype != ArchetypeDirectDamage) {
		return fmt.Errorf("ability %q: multiplier only applies to direct_damage", a.ID)
	}
	return nil
}

// ClassDefinition is the immutable configuration of a playable or boss class.
type ClassDefinition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Number is the 1-based menu number of a player class; 0 for the boss.
	Number          int                  `yaml:"number"`
	Boss            bool                 `yaml:"boss"`
	BaseHealth      int                  `yaml:"base_health"`
	BaseAttackPower int                  `yaml:"base_attack_power"`
	Abilities       []*AbilityDescriptor `yaml:"abilities"`
}

// Validate checks the class invariants and fills derived ability display names.
//
// Postcondition: Returns nil iff ID and Name are non-empty, BaseHealth and
// BaseAttackPower are positive, Number matches Boss, and there are exactly
// AbilitiesPerClass valid abilities with unique ids.
func (c *ClassDefinition) Validate() error {
	if c.ID == "" {
		return errors.New("class id must not be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("class %q: name must not be empty", c.ID)
	}
	if c.BaseHealth < 1 {
		return fmt.Errorf("class %q: base_health must be >= 1", c.ID)
	}
	if c.BaseAttackPower < 1 {
		return fmt.Errorf("class %q: base_attack_power must be >= 1", c.ID)
	}
	if c.Boss && c.Number != 0 {
		return fmt.Errorf("class %q: boss classes take no menu number", c.ID)
	}
	if !c.Boss && c.Number < 1 {
		return fmt.Errorf("class %q: number must be >= 1", c.ID)
	}
	if len(c.Abilities) != AbilitiesPerClass {
		return fmt.Errorf("class %q: must define exactly %d abilities, got %d", c.ID, AbilitiesPerClass, len(c.Abilities))
	}
	seen := make(map[string]bool, len(c.Abilities))
	for _, a := range c.Abilities {
		if a == nil {
			return fmt.Errorf("class %q: nil ability", c.ID)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("class %q: %w", c.ID, err)
		}
		if seen[a.ID] {
			return fmt.Errorf("class %q: duplicate ability id %q", c.ID, a.ID)
		}
		seen[a.ID] = true
		if a.DisplayName == "" {
			a.DisplayName = TitleFromID(a.ID)
		}
	}
	return nil
}

// Ability returns the ability with the given id.
func (c *ClassDefinition) Ability(id string) (*AbilityDescriptor, bool) {
	for _, a := range c.Abilities {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// TitleFromID converts a snake_case id to a title-cased display name,
// e.g. "quick_shot" becomes "Quick Shot".
func TitleFromID(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// LoadClassFromBytes parses and validates a single class from raw YAML.
//
// Postcondition: Returns a validated *ClassDefinition, or an error.
func LoadClassFromBytes(data []byte) (*ClassDefinition, error) {
	var c ClassDefinition
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing class YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadClasses reads every .yaml/.yml file in dir of fsys and parses each as a
// ClassDefinition.
//
// Precondition: dir must be a readable directory in fsys.
// Postcondition: Returns all classes in file name order, or an error on the
// first parse or validation failure.
func LoadClasses(fsys fs.FS, dir string) ([]*ClassDefinition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading class dir %q: %w", dir, err)
	}
	var classes []*ClassDefinition
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		p := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		c, err := LoadClassFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		classes = append(classes, c)
	}
	return classes, nil
}
