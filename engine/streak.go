/*
streak.go - Streak bonus resolution

PURPOSE:
  Converts a count of consecutive qualifying days into a bonus fraction.
  A qualifying day is one that met or exceeded its own point target; the
  count is supplied by the caller's history provider so this package never
  walks stored day records itself.

FORMULA:
  bonus = min(1.0, max(0.0, (priorConsecutiveDays - 1) * 0.1))

  The first qualifying day grants no bonus (the "-1" term): a streak of
  one is not a streak. Each additional consecutive day adds 10%, capped
  at 100%.

EXAMPLE:
  ResolveBonus(0)  == 0.0   (no history)
  ResolveBonus(1)  == 0.0   (single day, no streak yet)
  ResolveBonus(6)  == 0.5
  ResolveBonus(11) == 1.0   (cap)
  ResolveBonus(40) == 1.0   (cap)

SEE ALSO:
  - points.go: Applies the resolved bonus to routine tasks
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// ResolveBonus returns the streak bonus fraction for a day preceded by the
// given number of consecutive qualifying days.
//
// The result is always in [0, 1]. Negative inputs are clamped to zero
// rather than rejected, so transient garbage from an upstream history
// provider cannot crash a caller mid-render. The caller injects the result
// into each routine TaskSnapshot's Bonus field before scoring.
func ResolveBonus(priorConsecutiveDays int) decimal.Decimal {
	if priorConsecutiveDays <= 1 {
		return decimal.Zero
	}
	bonus := bonusStep.Mul(decimal.NewFromInt(int64(priorConsecutiveDays - 1)))
	return clampUnit(bonus)
}
