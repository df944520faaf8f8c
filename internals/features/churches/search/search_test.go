package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	churchDTO "churchfinder_backend/internals/features/churches/churches/dto"
	eventDTO "churchfinder_backend/internals/features/churches/events/dto"
)

func churchAt(name, city, zip string, lat, lng float64, services ...string) churchDTO.ChurchResponse {
	return churchDTO.ChurchResponse{
		Name:        name,
		City:        city,
		Zip:         zip,
		Services:    services,
		Coordinates: &churchDTO.Coordinates{Lat: lat, Lng: lng},
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(33.9088, -118.3712, 34.0522, -118.2437)
	b := Distance(34.0522, -118.2437, 33.9088, -118.3712)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceSamePointIsZero(t *testing.T) {
	assert.InDelta(t, 0, Distance(34.0522, -118.2437, 34.0522, -118.2437), 1e-9)
}

func TestDistanceHawthorneToDowntownLA(t *testing.T) {
	// Hawthorne to downtown Los Angeles is a bit over eleven miles.
	d := Distance(33.9088, -118.3712, 34.0522, -118.2437)
	assert.InDelta(t, 11.3, d, 0.5)
}

func TestAttachDistances(t *testing.T) {
	churches := []churchDTO.ChurchResponse{
		churchAt("St. Mary", "Los Angeles", "90012", 34.0522, -118.2437),
		{Name: "No Coords", City: "Glendale", Zip: "91201"},
	}

	AttachDistances(churches, nil)
	assert.Nil(t, churches[0].Distance)
	assert.Nil(t, churches[1].Distance)

	loc := &UserLocation{Lat: 33.9088, Lng: -118.3712}
	AttachDistances(churches, loc)
	require.NotNil(t, churches[0].Distance)
	assert.Greater(t, *churches[0].Distance, 10.0)
	assert.Nil(t, churches[1].Distance, "church without coordinates keeps nil distance")
}

func TestSortByDistanceStable(t *testing.T) {
	far, near := 25.0, 2.5
	churches := []churchDTO.ChurchResponse{
		{Name: "Far", Distance: &far},
		{Name: "Unknown A"},
		{Name: "Near", Distance: &near},
		{Name: "Unknown B"},
	}
	SortByDistance(churches)

	// Measured entries ascend; unmeasured ones keep encounter order.
	assert.Equal(t, "Near", churches[0].Name)
	idxA, idxB := -1, -1
	for i, c := range churches {
		switch c.Name {
		case "Unknown A":
			idxA = i
		case "Unknown B":
			idxB = i
		}
	}
	assert.Less(t, idxA, idxB)

	prev := -1.0
	for _, c := range churches {
		if c.Distance == nil {
			continue
		}
		assert.GreaterOrEqual(t, *c.Distance, prev)
		prev = *c.Distance
	}
}

func TestFilterChurchesQueryAndLocation(t *testing.T) {
	churches := []churchDTO.ChurchResponse{
		churchAt("Debre Genet St. Mary", "Los Angeles", "90012", 34.05, -118.24),
		churchAt("Holy Trinity", "Seattle", "98101", 47.60, -122.33),
	}

	got := FilterChurches(churches, ChurchFilter{Query: "mary"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Debre Genet St. Mary", got[0].Name)

	got = FilterChurches(churches, ChurchFilter{Query: "98101"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Holy Trinity", got[0].Name)

	got = FilterChurches(churches, ChurchFilter{Location: "seattle"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Holy Trinity", got[0].Name)

	got = FilterChurches(churches, ChurchFilter{}, nil)
	assert.Len(t, got, 2, "empty filter is a no-op")
}

func TestFilterChurchesMaxDistance(t *testing.T) {
	loc := &UserLocation{Lat: 33.9088, Lng: -118.3712}
	churches := []churchDTO.ChurchResponse{
		churchAt("Downtown", "Los Angeles", "90012", 34.0522, -118.2437),
	}
	AttachDistances(churches, loc)

	got := FilterChurches(churches, ChurchFilter{MaxDistance: 10}, loc)
	assert.Empty(t, got, "eleven miles away is outside a 10 mile radius")

	got = FilterChurches(churches, ChurchFilter{MaxDistance: 25}, loc)
	assert.Len(t, got, 1)
}

func TestFilterChurchesDistanceSkippedWithoutLocation(t *testing.T) {
	churches := []churchDTO.ChurchResponse{
		churchAt("Downtown", "Los Angeles", "90012", 34.0522, -118.2437),
	}
	got := FilterChurches(churches, ChurchFilter{MaxDistance: 5}, nil)
	assert.Len(t, got, 1, "distance filter is inert without a user location")
}

func TestFilterChurchesServices(t *testing.T) {
	churches := []churchDTO.ChurchResponse{
		churchAt("A", "LA", "90001", 34, -118, "Sunday School", "Youth Ministry"),
		churchAt("B", "LA", "90002", 34, -118, "Counseling"),
	}

	got := FilterChurches(churches, ChurchFilter{Services: []string{"Youth Ministry"}}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	got = FilterChurches(churches, ChurchFilter{Services: []string{"Youth Ministry", "Counseling"}}, nil)
	assert.Len(t, got, 2, "service categories OR together")
}

func TestFilterChurchesIsSubset(t *testing.T) {
	churches := []churchDTO.ChurchResponse{
		churchAt("A", "LA", "90001", 34, -118),
		churchAt("B", "Seattle", "98101", 47, -122),
	}
	got := FilterChurches(churches, ChurchFilter{Query: "zzz"}, nil)
	assert.LessOrEqual(t, len(got), len(churches))
	assert.Empty(t, got)
}

func eventOn(title, typ, location string, date time.Time) eventDTO.EventResponse {
	return eventDTO.EventResponse{Title: title, Type: typ, Location: location, Date: date}
}

func TestFilterEventsDateRanges(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []eventDTO.EventResponse{
		eventOn("In 3 days", "Service", "LA", now.AddDate(0, 0, 3)),
		eventOn("In 7 days", "Service", "LA", now.AddDate(0, 0, 7)),
		eventOn("In 8 days", "Service", "LA", now.AddDate(0, 0, 8)),
		eventOn("In 40 days", "Service", "LA", now.AddDate(0, 0, 40)),
	}

	got := FilterEvents(events, EventFilter{DateRange: DateRangeThisWeek}, now)
	require.Len(t, got, 2)
	assert.Equal(t, "In 7 days", got[1].Title, "the 7 day boundary is inclusive")

	got = FilterEvents(events, EventFilter{DateRange: DateRangeThisMonth}, now)
	require.Len(t, got, 3)
	assert.Equal(t, "In 8 days", got[2].Title)

	got = FilterEvents(events, EventFilter{DateRange: DateRangeUpcoming}, now)
	assert.Len(t, got, 4)
}

func TestFilterEventsLocationAndTypes(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []eventDTO.EventResponse{
		eventOn("Feast", "Holiday", "St. Mary, Los Angeles", now.AddDate(0, 0, 1)),
		eventOn("Bible Study", "Class", "Holy Trinity, Seattle", now.AddDate(0, 0, 2)),
	}

	got := FilterEvents(events, EventFilter{Location: "seattle"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Bible Study", got[0].Title)

	got = FilterEvents(events, EventFilter{Types: []string{"Holiday"}}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Feast", got[0].Title)

	got = FilterEvents(events, EventFilter{Types: []string{"Holiday", "Class"}}, now)
	assert.Len(t, got, 2)
}
