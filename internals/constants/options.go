package constants

// Option sets shown by the directory client. Filters validate against these.

var ServiceOptions = []string{
	"Sunday Service",
	"Bible Study",
	"Youth Programs",
	"Community Events",
	"Baptism Services",
	"Wedding Ceremonies",
}

var EventTypes = []string{
	"Holiday",
	"Bible Study",
	"Community",
	"Worship",
	"Fundraiser",
}

var Languages = []string{
	"Amharic",
	"English",
	"Ge'ez",
	"Tigrinya",
	"Oromo",
}

// Max-distance filter thresholds, in miles.
var DistanceOptions = []float64{5, 10, 25, 50}

// Schedule repeat frequencies. The first entry is the default and is not
// annotated in derived schedule descriptions.
var RepeatOptions = []string{
	"Every Week",
	"Every 2 Weeks",
	"Monthly",
	"First of Month",
	"Last of Month",
	"Daily",
}

const DefaultRepeat = "Every Week"

func IsValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidDistanceOption(d float64) bool {
	for _, v := range DistanceOptions {
		if v == d {
			return true
		}
	}
	return false
}
