package engine_test

import (
	"testing"

	"github.com/tallyhq/habit-engine/engine"
)

func TestResolveBonus_KnownValues(t *testing.T) {
	// GIVEN: streak lengths across the whole useful range
	// WHEN: resolving the bonus fraction
	// THEN: 0 below two days, +10% per extra day, capped at 100%

	cases := []struct {
		days int
		want string
	}{
		{0, "0"},
		{1, "0"}, // a streak of one is not a streak
		{2, "0.1"},
		{3, "0.2"},
		{6, "0.5"},
		{10, "0.9"},
		{11, "1"},
		{12, "1"},
		{365, "1"},
	}

	for _, tc := range cases {
		got := engine.ResolveBonus(tc.days)
		if !got.Equal(dec(tc.want)) {
			t.Errorf("ResolveBonus(%d) = %v, want %v", tc.days, got, tc.want)
		}
	}
}

func TestResolveBonus_NegativeInputClamped(t *testing.T) {
	// GIVEN: a negative day count from a buggy history provider
	// WHEN: resolving the bonus
	// THEN: clamped to zero, never rejected

	if got := engine.ResolveBonus(-7); !got.IsZero() {
		t.Errorf("ResolveBonus(-7) = %v, want 0", got)
	}
}

func TestResolveBonus_AlwaysInUnitInterval(t *testing.T) {
	for days := -5; days <= 50; days++ {
		got := engine.ResolveBonus(days)
		if got.IsNegative() || got.GreaterThan(dec("1")) {
			t.Fatalf("ResolveBonus(%d) = %v, outside [0, 1]", days, got)
		}
	}
}
