// Package search is the pure distance/filter engine behind the directory
// views: haversine ranking of churches around the visitor and compound
// filtering of church and event lists. It performs no I/O.
package search

import (
	"math"
	"sort"
	"strings"
	"time"

	churchDTO "churchfinder_backend/internals/features/churches/churches/dto"
	eventDTO "churchfinder_backend/internals/features/churches/events/dto"
)

const earthRadiusMiles = 3958.8

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance computes the great-circle distance in miles between two
// lat/lng points using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// UserLocation is the visitor's position when known. A nil *UserLocation
// disables distance attachment, sorting by distance, and the distance filter.
type UserLocation struct {
	Lat float64
	Lng float64
}

// AttachDistances sets Distance on every church that has coordinates. With
// no user location the field stays nil on all entries.
func AttachDistances(churches []churchDTO.ChurchResponse, loc *UserLocation) {
	if loc == nil {
		return
	}
	for i := range churches {
		if c := churches[i].Coordinates; c != nil {
			d := Distance(loc.Lat, loc.Lng, c.Lat, c.Lng)
			churches[i].Distance = &d
		}
	}
}

// SortByDistance orders ascending by attached distance. Pairs where either
// side has no distance compare equal, so entries without one keep their
// encounter order.
func SortByDistance(churches []churchDTO.ChurchResponse) {
	sort.SliceStable(churches, func(i, j int) bool {
		di, dj := churches[i].Distance, churches[j].Distance
		if di == nil || dj == nil {
			return false
		}
		return *di < *dj
	})
}

// ChurchFilter is the compound predicate applied to a church list. All
// criteria AND together; each empty criterion matches everything.
type ChurchFilter struct {
	Query       string   // substring of name, city or zip
	Location    string   // substring of city or zip
	MaxDistance float64  // miles; 0 disables
	Services    []string // checked service categories, OR across them
}

// FilterChurches returns the churches passing every active criterion. The
// distance criterion only applies when the visitor's location is known AND
// the church has an attached distance.
func FilterChurches(churches []churchDTO.ChurchResponse, f ChurchFilter, loc *UserLocation) []churchDTO.ChurchResponse {
	out := make([]churchDTO.ChurchResponse, 0, len(churches))
	for _, c := range churches {
		if !matchesQuery(&c, f.Query) {
			continue
		}
		if !matchesLocation(&c, f.Location) {
			continue
		}
		if loc != nil && c.Distance != nil && f.MaxDistance > 0 && *c.Distance > f.MaxDistance {
			continue
		}
		if !matchesServices(&c, f.Services) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesQuery(c *churchDTO.ChurchResponse, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.City), q) ||
		strings.Contains(strings.ToLower(c.Zip), q)
}

func matchesLocation(c *churchDTO.ChurchResponse, location string) bool {
	l := strings.ToLower(strings.TrimSpace(location))
	if l == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.City), l) ||
		strings.Contains(strings.ToLower(c.Zip), l)
}

func matchesServices(c *churchDTO.ChurchResponse, active []string) bool {
	if len(active) == 0 {
		return true
	}
	for _, want := range active {
		for _, have := range c.Services {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Event date-range modes.
const (
	DateRangeUpcoming  = "upcoming"
	DateRangeThisWeek  = "thisWeek"
	DateRangeThisMonth = "thisMonth"
)

// EventFilter is the compound predicate applied to an event list.
type EventFilter struct {
	Location  string   // substring of the event location string
	Types     []string // checked event types, OR across them
	DateRange string   // one of the DateRange* modes; empty behaves as upcoming
}

// FilterEvents returns events passing every active criterion. now is
// captured once by the caller so the whole pass shares one reference time:
// thisWeek is [now, now+7d], thisMonth is [now, now+30d], both inclusive.
func FilterEvents(events []eventDTO.EventResponse, f EventFilter, now time.Time) []eventDTO.EventResponse {
	weekEnd := now.AddDate(0, 0, 7)
	monthEnd := now.AddDate(0, 0, 30)

	out := make([]eventDTO.EventResponse, 0, len(events))
	for _, e := range events {
		if l := strings.ToLower(strings.TrimSpace(f.Location)); l != "" {
			if !strings.Contains(strings.ToLower(e.Location), l) {
				continue
			}
		}
		if len(f.Types) > 0 && !containsString(f.Types, e.Type) {
			continue
		}
		switch f.DateRange {
		case DateRangeThisWeek:
			if e.Date.Before(now) || e.Date.After(weekEnd) {
				continue
			}
		case DateRangeThisMonth:
			if e.Date.Before(now) || e.Date.After(monthEnd) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
