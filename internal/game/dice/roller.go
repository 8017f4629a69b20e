package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide the battle damage model.
// All rolls are logged at debug level with kind, range and value.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that rolls with src and logs each roll to logger.
// A nil logger disables roll logging.
//
// Precondition: src must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil {
		panic("dice: NewRoller precondition violated: src must be non-nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// RollAttack returns a uniformly distributed attack damage around base.
//
// Precondition: base >= 0.
// Postcondition: max(0, base-5) <= result <= base+5.
func (r *Roller) RollAttack(base int) int {
	lo, hi := AttackRange(base)
	return r.record(KindAttack, lo, hi).Value
}

// RollBonus returns a uniform integer in [min, max].
//
// Precondition: 0 <= min <= max.
// Postcondition: min <= result <= max.
func (r *Roller) RollBonus(min, max int) int {
	if min < 0 {
		panic("dice: RollBonus precondition violated: min must be >= 0")
	}
	return r.record(KindBonus, min, max).Value
}

// Choose returns a uniform index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Choose(n int) int {
	return r.record(KindChoice, 0, n-1).Value
}

func (r *Roller) record(kind Kind, lo, hi int) RollResult {
	res := RollResult{Kind: kind, Min: lo, Max: hi, Value: Between(r.src, lo, hi)}
	r.logger.Debug("roll",
		zap.String("kind", string(res.Kind)),
		zap.Int("min", res.Min),
		zap.Int("max", res.Max),
		zap.Int("value", res.Value),
	)
	return res
}
