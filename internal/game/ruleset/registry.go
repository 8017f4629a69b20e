package ruleset

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/cory-johannsen/evilwizard/content"
)

// DefaultClassNumber is the menu number unknown selections fall back to.
const DefaultClassNumber = 1

// Registry provides lookup of class definitions by id and by menu number.
//
// Invariant: ids and menu numbers are unique; at most one boss class is registered.
type Registry struct {
	byID     map[string]*ClassDefinition
	byNumber map[int]*ClassDefinition
	boss     *ClassDefinition
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*ClassDefinition),
		byNumber: make(map[int]*ClassDefinition),
	}
}

// Register validates def and adds it to the registry.
//
// Precondition: def must be non-nil.
// Postcondition: Returns an error on validation failure or on id, number or
// boss collision; the registry is unchanged on error.
func (r *Registry) Register(def *ClassDefinition) error {
	if def == nil {
		panic("Registry.Register: precondition violated: def must be non-nil")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := r.byID[def.ID]; exists {
		return fmt.Errorf("ruleset.Registry: class %q already registered", def.ID)
	}
	if def.Boss {
		if r.boss != nil {
			return fmt.Errorf("ruleset.Registry: boss class already registered as %q", r.boss.ID)
		}
		r.boss = def
	} else {
		if other, exists := r.byNumber[def.Number]; exists {
			return fmt.Errorf("ruleset.Registry: number %d used by both %q and %q", def.Number, other.ID, def.ID)
		}
		r.byNumber[def.Number] = def
	}
	r.byID[def.ID] = def
	return nil
}

// Class returns the class registered under id.
func (r *Registry) Class(id string) (*ClassDefinition, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// ByNumber returns the player class with the given menu number.
func (r *Registry) ByNumber(n int) (*ClassDefinition, bool) {
	c, ok := r.byNumber[n]
	return c, ok
}

// Default returns the baseline player class (menu number 1).
//
// Precondition: a class with DefaultClassNumber must be registered.
func (r *Registry) Default() *ClassDefinition {
	c, ok := r.byNumber[DefaultClassNumber]
	if !ok {
		panic("Registry.Default: precondition violated: no class registered with number 1")
	}
	return c
}

// Resolve returns the player class with menu number n, falling back to the
// default class when n is unknown.
//
// Postcondition: Returns a non-nil class; defaulted is true iff n was unknown.
func (r *Registry) Resolve(n int) (def *ClassDefinition, defaulted bool) {
	if c, ok := r.byNumber[n]; ok {
		return c, false
	}
	return r.Default(), true
}

// Boss returns the boss class.
func (r *Registry) Boss() (*ClassDefinition, bool) {
	return r.boss, r.boss != nil
}

// PlayerClasses returns all player classes ordered by menu number.
func (r *Registry) PlayerClasses() []*ClassDefinition {
	out := make([]*ClassDefinition, 0, len(r.byNumber))
	for _, c := range r.byNumber {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// NewRegistryFrom registers every class in defs.
//
// Postcondition: Returns a registry holding all of defs, or the first registration error.
func NewRegistryFrom(defs []*ClassDefinition) (*Registry, error) {
	reg := NewRegistry()
	for _, d := range defs {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// CheckPlayable reports whether a battle can be set up from r: the default
// player class and the boss must both be registered.
//
// Postcondition: Returns nil, or an error wrapping ErrUnknownClass naming what is missing.
func (r *Registry) CheckPlayable() error {
	var missing []string
	if _, ok := r.byNumber[DefaultClassNumber]; !ok {
		missing = append(missing, fmt.Sprintf("no player class with number %d", DefaultClassNumber))
	}
	if r.boss == nil {
		missing = append(missing, "no boss class")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownClass, strings.Join(missing, "; "))
	}
	return nil
}

// LoadRegistry builds a registry from the class files in dir of fsys.
//
// Postcondition: Returns a registry that passes CheckPlayable, or an error.
func LoadRegistry(fsys fs.FS, dir string) (*Registry, error) {
	defs, err := LoadClasses(fsys, dir)
	if err != nil {
		return nil, err
	}
	reg, err := NewRegistryFrom(defs)
	if err != nil {
		return nil, err
	}
	if err := reg.CheckPlayable(); err != nil {
		return nil, fmt.Errorf("classes in %q: %w", dir, err)
	}
	return reg, nil
}

// LoadDefaultRegistry builds a registry from the built-in class content.
//
// Postcondition: Returns a registry with the 15 player classes and the boss,
// or an error if the embedded content is invalid.
func LoadDefaultRegistry() (*Registry, error) {
	return LoadRegistry(content.Classes, content.ClassesDir)
}
