package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/titanic/api/internal/models"
)

// Error reports the first field that failed validation and why.
type Error struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func fieldErr(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Passenger checks every field of an already-typed record against its
// training-time domain. This runs on the server for every request, even
// when a form-level clamp should already have enforced the same bounds.
func Passenger(p models.PassengerInput) error {
	if p.Pclass < 1 || p.Pclass > 3 {
		return fieldErr("pclass", "must be 1, 2 or 3, got %d", p.Pclass)
	}
	if p.Sex != models.SexMale && p.Sex != models.SexFemale {
		return fieldErr("sex", "must be male or female, got %q", p.Sex)
	}
	// NaN compares false against every bound, so non-finite values
	// must be rejected explicitly.
	if math.IsNaN(p.Age) || math.IsInf(p.Age, 0) || p.Age < models.AgeMin || p.Age > models.AgeMax {
		return fieldErr("age", "must be between %g and %g, got %g", models.AgeMin, models.AgeMax, p.Age)
	}
	if p.SibSp < models.SibSpMin || p.SibSp > models.SibSpMax {
		return fieldErr("sibsp", "must be between %d and %d, got %d", models.SibSpMin, models.SibSpMax, p.SibSp)
	}
	if p.Parch < models.ParchMin || p.Parch > models.ParchMax {
		return fieldErr("parch", "must be between %d and %d, got %d", models.ParchMin, models.ParchMax, p.Parch)
	}
	if math.IsNaN(p.Fare) || math.IsInf(p.Fare, 0) || p.Fare < models.FareMin {
		return fieldErr("fare", "must be a non-negative finite number, got %g", p.Fare)
	}
	switch p.Embarked {
	case models.EmbarkedCherbourg, models.EmbarkedQueenstown, models.EmbarkedSouthampton:
	default:
		return fieldErr("embarked", "must be C, Q or S, got %q", p.Embarked)
	}
	return nil
}

// Form holds raw user-entered field values before validation. Empty
// strings are missing fields.
type Form struct {
	Pclass   string
	Sex      string
	Age      string
	SibSp    string
	Parch    string
	Fare     string
	Embarked string
}

// Parse coerces raw form values into a PassengerInput or fails with a
// field-specific Error. All seven fields must be present.
func (f Form) Parse() (models.PassengerInput, error) {
	var p models.PassengerInput

	fields := []struct {
		name  string
		value string
	}{
		{"pclass", f.Pclass},
		{"sex", f.Sex},
		{"age", f.Age},
		{"sibsp", f.SibSp},
		{"parch", f.Parch},
		{"fare", f.Fare},
		{"embarked", f.Embarked},
	}
	for _, fld := range fields {
		if strings.TrimSpace(fld.value) == "" {
			return p, fieldErr(fld.name, "is required")
		}
	}

	pclass, err := strconv.Atoi(strings.TrimSpace(f.Pclass))
	if err != nil {
		return p, fieldErr("pclass", "must be an integer")
	}
	age, err := strconv.ParseFloat(strings.TrimSpace(f.Age), 64)
	if err != nil {
		return p, fieldErr("age", "must be a number")
	}
	sibsp, err := strconv.Atoi(strings.TrimSpace(f.SibSp))
	if err != nil {
		return p, fieldErr("sibsp", "must be an integer")
	}
	parch, err := strconv.Atoi(strings.TrimSpace(f.Parch))
	if err != nil {
		return p, fieldErr("parch", "must be an integer")
	}
	fare, err := strconv.ParseFloat(strings.TrimSpace(f.Fare), 64)
	if err != nil {
		return p, fieldErr("fare", "must be a number")
	}

	p = models.PassengerInput{
		Pclass:   pclass,
		Sex:      models.Sex(strings.ToLower(strings.TrimSpace(f.Sex))),
		Age:      age,
		SibSp:    sibsp,
		Parch:    parch,
		Fare:     fare,
		Embarked: models.Embarked(strings.ToUpper(strings.TrimSpace(f.Embarked))),
	}
	if err := Passenger(p); err != nil {
		return models.PassengerInput{}, err
	}
	return p, nil
}
