package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

const archerYAML = `
id: archer
name: Archer
number: 3
base_health: 110
base_attack_power: 20
abilities:
  - id: quick_shot
    archetype: direct_damage
    bonus: [3, 8]
    multiplier: 2
  - id: evade
    archetype: narrative
  - id: precision_strike
    archetype: direct_damage
    bonus: [4, 9]
  - id: rapid_fire
    archetype: multi_hit
    hits: 2
  - id: piercing_arrow
    name: "Piercing Arrow!"
    archetype: direct_damage
    bonus: [5, 10]
  - id: arrow_rain
    archetype: multi_hit
    hits: 3
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadClassFromBytes_ParsesYAML(t *testing.T) {
	c, err := ruleset.LoadClassFromBytes([]byte(archerYAML))
	require.NoError(t, err)
	assert.Equal(t, "archer", c.ID)
	assert.Equal(t, 3, c.Number)
	assert.Equal(t, 110, c.BaseHealth)
	assert.Equal(t, 20, c.BaseAttackPower)
	require.Len(t, c.Abilities, ruleset.AbilitiesPerClass)

	qs := c.Abilities[0]
	assert.Equal(t, "Quick Shot", qs.DisplayName, "display name is derived from the id")
	assert.Equal(t, ruleset.ArchetypeDirectDamage, qs.Archetype)
	assert.Equal(t, &ruleset.Range{Min: 3, Max: 8}, qs.Bonus)
	assert.Equal(t, 2, qs.AttackMultiplier())
	assert.Equal(t, 1, c.Abilities[2].AttackMultiplier())
	assert.Equal(t, 3, c.Abilities[5].Hits)
	assert.Equal(t, "Piercing Arrow!", c.Abilities[4].DisplayName, "explicit names are kept")
}

func TestLoadClasses_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "archer.yaml"), archerYAML)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	classes, err := ruleset.LoadClasses(os.DirFS(dir), ".")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "archer", classes[0].ID)
}

func TestLoadClasses_MissingDir(t *testing.T) {
	_, err := ruleset.LoadClasses(fstest.MapFS{}, "nope")
	assert.Error(t, err)
}

func TestLoadClasses_InvalidFileFailsWithPath(t *testing.T) {
	fsys := fstest.MapFS{
		"classes/bad.yaml": {Data: []byte("id: bad\nname: Bad\nnumber: 1\nbase_health: 10\nbase_attack_power: 1\n")},
	}
	_, err := ruleset.LoadClasses(fsys, "classes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classes/bad.yaml")
	assert.Contains(t, err.Error(), "exactly 6 abilities")
}

func TestRange_RejectsWrongArity(t *testing.T) {
	_, err := ruleset.LoadClassFromBytes([]byte(`
id: x
name: X
number: 1
base_health: 10
base_attack_power: 1
abilities:
  - id: a
    archetype: heal
    bonus: [1, 2, 3]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 2 values")
}

func validAbilities() []*ruleset.AbilityDescriptor {
	return []*ruleset.AbilityDescriptor{
		{ID: "a", Archetype: ruleset.ArchetypeDirectDamage, Bonus: &ruleset.Range{Min: 1, Max: 2}},
		{ID: "b", Archetype: ruleset.ArchetypeMultiHit, Hits: 2},
		{ID: "c", Archetype: ruleset.ArchetypeHeal, Bonus: &ruleset.Range{Min: 1, Max: 2}},
		{ID: "d", Archetype: ruleset.ArchetypeSelfBuff, Bonus: &ruleset.Range{Min: 1, Max: 2}},
		{ID: "e", Archetype: ruleset.ArchetypeDefensiveFlag},
		{ID: "f", Archetype: ruleset.ArchetypeNarrative},
	}
}

func validClass() *ruleset.ClassDefinition {
	return &ruleset.ClassDefinition{
		ID: "test", Name: "Test", Number: 1, BaseHealth: 100, BaseAttackPower: 10,
		Abilities: validAbilities(),
	}
}

func TestClassDefinition_Validate(t *testing.T) {
	require.NoError(t, validClass().Validate())

	cases := map[string]func(c *ruleset.ClassDefinition){
		"empty id":           func(c *ruleset.ClassDefinition) { c.ID = "" },
		"empty name":         func(c *ruleset.ClassDefinition) { c.Name = "" },
		"zero health":        func(c *ruleset.ClassDefinition) { c.BaseHealth = 0 },
		"zero attack":        func(c *ruleset.ClassDefinition) { c.BaseAttackPower = 0 },
		"player w/o number":  func(c *ruleset.ClassDefinition) { c.Number = 0 },
		"boss with number":   func(c *ruleset.ClassDefinition) { c.Boss = true },
		"five abilities":     func(c *ruleset.ClassDefinition) { c.Abilities = c.Abilities[:5] },
		"duplicate ids":      func(c *ruleset.ClassDefinition) { c.Abilities[1].ID = "a" },
		"unknown archetype":  func(c *ruleset.ClassDefinition) { c.Abilities[0].Archetype = "teleport" },
		"missing bonus":      func(c *ruleset.ClassDefinition) { c.Abilities[0].Bonus = nil },
		"inverted bonus":     func(c *ruleset.ClassDefinition) { c.Abilities[0].Bonus = &ruleset.Range{Min: 5, Max: 1} },
		"negative bonus":     func(c *ruleset.ClassDefinition) { c.Abilities[0].Bonus = &ruleset.Range{Min: -1, Max: 1} },
		"zero heal":          func(c *ruleset.ClassDefinition) { c.Abilities[2].Bonus = &ruleset.Range{Min: 0, Max: 4} },
		"single hit":         func(c *ruleset.ClassDefinition) { c.Abilities[1].Hits = 1 },
		"hits on heal":       func(c *ruleset.ClassDefinition) { c.Abilities[2].Hits = 2 },
		"flag with bonus":    func(c *ruleset.ClassDefinition) { c.Abilities[4].Bonus = &ruleset.Range{Min: 1, Max: 1} },
		"multiplier on heal": func(c *ruleset.ClassDefinition) { c.Abilities[2].Multiplier = 2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validClass()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestArchetype_Targeted(t *testing.T) {
	assert.True(t, ruleset.ArchetypeDirectDamage.Targeted())
	assert.True(t, ruleset.ArchetypeMultiHit.Targeted())
	assert.True(t, ruleset.ArchetypeLifeDrain.Targeted())
	for _, a := range []ruleset.Archetype{
		ruleset.ArchetypeHeal, ruleset.ArchetypeSelfBuff, ruleset.ArchetypeSelfDamage,
		ruleset.ArchetypeDefensiveFlag, ruleset.ArchetypeNarrative,
	} {
		assert.False(t, a.Targeted(), "%s", a)
	}
}

func TestTitleFromID(t *testing.T) {
	assert.Equal(t, "Quick Shot", ruleset.TitleFromID("quick_shot"))
	assert.Equal(t, "Natures Favor", ruleset.TitleFromID("natures_favor"))
	assert.Equal(t, "Rage", ruleset.TitleFromID("rage"))
}

// Property: any well-formed range with 0 <= min <= max on a heal-free
// archetype passes validation.
func TestAbilityDescriptor_Validate_Property_RangeAccepted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		min := rapid.IntRange(0, 50).Draw(rt, "min")
		max := rapid.IntRange(min, 100).Draw(rt, "max")
		a := &ruleset.AbilityDescriptor{ID: "x", Archetype: ruleset.ArchetypeDirectDamage, Bonus: &ruleset.Range{Min: min, Max: max}}
		if err := a.Validate(); err != nil {
			rt.Fatalf("range [%d,%d] rejected: %v", min, max, err)
		}
	})
}
