package geo

import "sort"

// Result annotates an item with its computed distance from the origin.
// Recomputed on every filter call, never persisted.
type Result[T any] struct {
	Item       T       `json:"item"`
	DistanceKm float64 `json:"distance_km"`
}

// FilterWithinRadius computes the distance from origin to every item and
// returns those within radiusKm (boundary inclusive), sorted ascending by
// distance. Ties keep input order. An empty or nil input yields an empty
// result, not an error.
//
// The origin must be a usable point: a NaN component fails with
// ErrMissingOrigin rather than silently matching everything or nothing.
// Items whose location fails the distance computation are reported via
// ErrInvalidCoordinate; callers that want to skip bad records must filter
// them out first.
func FilterWithinRadius[T any](origin Point, radiusKm float64, items []T, loc func(T) Point) ([]Result[T], error) {
	if err := origin.Validate(); err != nil {
		return nil, ErrMissingOrigin
	}
	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		d, err := DistanceKm(origin, loc(item))
		if err != nil {
			return nil, err
		}
		if d <= radiusKm {
			results = append(results, Result[T]{Item: item, DistanceKm: d})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}
