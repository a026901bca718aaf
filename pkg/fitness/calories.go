package fitness

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxDurationMinutes is the longest accepted activity, one day.
const MaxDurationMinutes = 24 * 60

// activities maps an activity to its Metabolic Equivalent of Task, in report order
var activities = []struct {
	name string
	met  float64
}{
	{"walking", 3.5},
	{"jogging", 7.0},
	{"running", 10.0},
	{"cycling", 8.0},
	{"swimming", 6.0},
	{"weight lifting", 3.5},
	{"yoga", 2.5},
	{"hiit", 8.0},
	{"dancing", 4.5},
	{"hiking", 5.3},
}

// Activities returns the supported activity names.
func Activities() []string {
	names := make([]string, len(activities))
	for i, a := range activities {
		names[i] = a.name
	}
	return names
}

// MET returns the Metabolic Equivalent of Task of a case-insensitive activity.
func MET(activity string) (float64, error) {
	name := strings.ToLower(strings.TrimSpace(activity))
	for _, a := range activities {
		if a.name == name {
			return a.met, nil
		}
	}
	return 0, errors.WithMessagef(ErrUnsupportedActivity,
		"activity %q is not supported, supported activities are: %s", name, strings.Join(Activities(), ", "))
}

// Burn is the result of CaloriesBurned.
type Burn struct {
	Activity string
	MET      float64
	// Calories is rounded to whole kilocalories
	Calories float64
}

// CaloriesBurned estimates the kilocalories burned as MET * weight * hours.
func CaloriesBurned(activity string, durationMin int, weightKg float64) (Burn, error) {
	met, err := MET(activity)
	if err != nil {
		return Burn{}, err
	}
	switch {
	case durationMin <= 0:
		return Burn{}, invalidf("duration must be at least one minute, got %d", durationMin)
	case durationMin > MaxDurationMinutes:
		return Burn{}, invalidf("duration exceeds the maximum of %d minutes", MaxDurationMinutes)
	case !isFinite(weightKg) || weightKg <= 0:
		return Burn{}, invalidf("weight must be greater than zero, got %v", weightKg)
	case weightKg > MaxWeightKg:
		return Burn{}, invalidf("weight exceeds the maximum of %v kg", MaxWeightKg)
	}

	kcal := met * weightKg * float64(durationMin) / 60
	return Burn{
		Activity: strings.ToLower(strings.TrimSpace(activity)),
		MET:      met,
		Calories: round(kcal, 0),
	}, nil
}
