package wind

import (
	"sort"

	"github.com/umahmood/haversine"
)

// GridPoint identifies one reanalysis grid cell.
type GridPoint struct {
	Index     string  `json:"index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GridMatch pairs a grid point with its great-circle distance from the query
// location.
type GridMatch struct {
	GridPoint
	DistanceKm float64 `json:"distance_km"`
}

// GridSet is the set of grid points of one dataset. It is built once at
// startup and read-only afterwards.
type GridSet struct {
	profile *DatasetProfile
	points  []GridPoint
}

// NewGridSet creates a grid set for the given dataset profile. The point
// slice is copied so later mutation by the caller cannot leak in.
func NewGridSet(profile *DatasetProfile, points []GridPoint) *GridSet {
	ps := make([]GridPoint, len(points))
	copy(ps, points)
	return &GridSet{profile: profile, points: ps}
}

// Profile returns the dataset profile the grid set belongs to.
func (gs *GridSet) Profile() *DatasetProfile {
	return gs.profile
}

// Size returns the number of grid points in the set.
func (gs *GridSet) Size() int {
	return len(gs.points)
}

// Nearest returns the n grid points closest to the given location, ordered by
// ascending haversine distance. Equal distances are broken by ascending grid
// index so results are deterministic. Locations outside the dataset's
// coverage fail with OutOfRegionError.
func (gs *GridSet) Nearest(lat, lng float64, n int) ([]GridMatch, error) {
	if n < 1 {
		n = 1
	}

	if !gs.profile.Bounds.Contains(lat, lng) {
		return nil, &OutOfRegionError{
			Latitude:  lat,
			Longitude: lng,
			Dataset:   gs.profile.Name,
			Bounds:    gs.profile.Bounds,
		}
	}

	query := haversine.Coord{Lat: lat, Lon: lng}

	matches := make([]GridMatch, 0, len(gs.points))
	for _, p := range gs.points {
		_, km := haversine.Distance(query, haversine.Coord{Lat: p.Latitude, Lon: p.Longitude})
		matches = append(matches, GridMatch{GridPoint: p, DistanceKm: km})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Index < matches[j].Index
	})

	if n > len(matches) {
		n = len(matches)
	}

	return matches[:n], nil
}
