// Package dice provides the randomness abstraction and the bounded damage
// model used by every attack, heal and ability roll in a battle.
package dice

import "fmt"

// Kind names what a roll was made for.
type Kind string

const (
	// KindAttack is a base attack roll around an attack power.
	KindAttack Kind = "attack"
	// KindBonus is an ability-specific extra value drawn from a bonus range.
	KindBonus Kind = "bonus"
	// KindChoice is a uniform pick among n options.
	KindChoice Kind = "choice"
)

// AttackSpread is the distance either side of attack power an attack roll may land.
const AttackSpread = 5

// RollResult holds the audit trail for a single bounded roll.
//
// Invariant: Min <= Value <= Max.
type RollResult struct {
	Kind  Kind
	Min   int
	Max   int
	Value int
}

// String returns a human-readable audit string in the format:
//
//	"attack [20,30] → 24"
func (r RollResult) String() string {
	return fmt.Sprintf("%s [%d,%d] → %d", r.Kind, r.Min, r.Max, r.Value)
}

// Source is the randomness provider for rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// AttackRange returns the inclusive range an attack with the given base power
// can roll.
//
// Precondition: base >= 0.
// Postcondition: lo == max(0, base-AttackSpread) and hi == base+AttackSpread.
func AttackRange(base int) (lo, hi int) {
	if base < 0 {
		panic("dice: AttackRange precondition violated: base must be >= 0")
	}
	lo = base - AttackSpread
	if lo < 0 {
		lo = 0
	}
	return lo, base + AttackSpread
}

// Between draws a uniform integer in the inclusive range [lo, hi] from src.
//
// Precondition: lo <= hi; src must be non-nil.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("dice: Between precondition violated: lo %d > hi %d", lo, hi))
	}
	return lo + src.Intn(hi-lo+1)
}
