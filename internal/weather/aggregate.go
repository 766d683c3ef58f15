package weather

import "sort"

// RankEvents returns a copy of events ordered by quality, best first.
// Equal scores keep chronological order.
func RankEvents(events []EventForecast) []EventForecast {
	ranked := make([]EventForecast, len(events))
	copy(ranked, events)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Quality != ranked[j].Quality {
			return ranked[i].Quality > ranked[j].Quality
		}
		return ranked[i].Time < ranked[j].Time
	})
	return ranked
}

// MeetsThreshold reports whether a score should trigger a notification.
func MeetsThreshold(score, threshold float64) bool {
	return score >= threshold
}
