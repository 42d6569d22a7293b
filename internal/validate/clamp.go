package validate

import "github.com/titanic/api/internal/models"

// Live clamps applied by the form as the user types. These mirror the
// bounds in Passenger but are a UX convenience only: a submission that
// bypasses them is still rejected by Parse/Passenger.

// ClampAge snaps an age entry into [0, 100].
func ClampAge(v float64) float64 {
	return clampFloat(v, models.AgeMin, models.AgeMax)
}

// ClampFare snaps a fare entry to be non-negative.
func ClampFare(v float64) float64 {
	if v < models.FareMin {
		return models.FareMin
	}
	return v
}

// ClampSibSp snaps a siblings/spouses count into [0, 10].
func ClampSibSp(v int) int {
	return clampInt(v, models.SibSpMin, models.SibSpMax)
}

// ClampParch snaps a parents/children count into [0, 10].
func ClampParch(v int) int {
	return clampInt(v, models.ParchMin, models.ParchMax)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
