package models

import "sort"

// VacationStats partitions vacation counts by their position relative to now.
type VacationStats struct {
	PastVacations    int `json:"pastVacations"`
	OngoingVacations int `json:"ongoingVacations"`
	FutureVacations  int `json:"futureVacations"`
}

// Total returns the overall vacation count across all three buckets.
func (v VacationStats) Total() int {
	return v.PastVacations + v.OngoingVacations + v.FutureVacations
}

// DestinationLikes is one destination/like-count pair of the likes
// distribution.
type DestinationLikes struct {
	Destination string `json:"destination"`
	Likes       int    `json:"likes"`
}

// TotalUsers is the payload of GET /users/total.
type TotalUsers struct {
	TotalUsers int `json:"totalUsers"`
}

// TotalLikes is the payload of GET /likes/total.
type TotalLikes struct {
	TotalLikes int `json:"totalLikes"`
}

// SummaryStats is the coalesced dashboard payload of GET /stats/summary.
//
// TopDestinations ordering is a display contract only. The backend is not
// required to sort it, so consumers must go through TopDestinationsByLikes
// rather than index into the raw slice.
type SummaryStats struct {
	VacationStats   VacationStats      `json:"vacationStats"`
	TotalUsers      int                `json:"totalUsers"`
	TotalLikes      int                `json:"totalLikes"`
	TopDestinations []DestinationLikes `json:"topDestinations"`
}

// TopDestinationsByLikes returns up to n destinations ordered by descending
// like count. The receiver's slice is left untouched; ties keep their
// original relative order.
func (s SummaryStats) TopDestinationsByLikes(n int) []DestinationLikes {
	sorted := make([]DestinationLikes, len(s.TopDestinations))
	copy(sorted, s.TopDestinations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likes > sorted[j].Likes
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
