/*
history.go - Streak history derivation

PURPOSE:
  Turns a window of past day results into the "consecutive qualifying
  days" count the engine's streak bonus is derived from. The engine
  deliberately takes this as a plain integer so it never walks stored
  day records; this file is the history provider that does the walking.

QUALIFYING:
  A day qualifies if it met or exceeded its own point target. The count
  for day D includes D itself when D qualifies, then extends backward
  through adjacent calendar days while each qualifies. Any gap - a missed
  day or an absent record - breaks the streak.

SEE ALSO:
  - engine/streak.go: Converts the count into a bonus fraction
  - scoring.go: Feeds the count through ResolveBonus into snapshots
*/
package habits

import "sort"

// ConsecutiveQualifyingDays counts the unbroken run of qualifying days
// ending at upTo, inclusive. Results may arrive unordered and may contain
// days outside the run; duplicates keep the latest entry.
//
// A day with no result at all is a gap: absence of evidence is a missed
// day, not a qualifying one.
func ConsecutiveQualifyingDays(results []DayResult, upTo Date) int {
	if len(results) == 0 {
		return 0
	}

	met := make(map[Date]bool, len(results))
	for _, r := range results {
		met[r.Date] = r.Met
	}

	count := 0
	for d := upTo; met[d]; d = d.Prev() {
		count++
	}
	return count
}

// QualifyingWindow returns the results sorted most-recent-first, trimmed
// to days at or before upTo. Useful for displaying streak history.
func QualifyingWindow(results []DayResult, upTo Date) []DayResult {
	window := make([]DayResult, 0, len(results))
	for _, r := range results {
		if !upTo.Before(r.Date) {
			window = append(window, r)
		}
	}
	sort.Slice(window, func(i, j int) bool {
		return window[j].Date.Before(window[i].Date)
	})
	return window
}
