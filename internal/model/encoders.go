package model

import (
	"fmt"

	"github.com/titanic/api/internal/models"
)

// Encoders hold the fixed category-to-code mapping produced at training
// time. Inference must apply the exact same codes; a mismatch between
// the loaded mapping and the feature layout is a fatal configuration
// error, not a recoverable one.
type Encoders struct {
	Sex      map[models.Sex]int      `json:"sex"`
	Embarked map[models.Embarked]int `json:"embarked"`
}

// TrainingEncoders returns the mapping used when the model was fit:
// label codes assigned in sorted class order.
func TrainingEncoders() Encoders {
	return Encoders{
		Sex: map[models.Sex]int{
			models.SexFemale: 0,
			models.SexMale:   1,
		},
		Embarked: map[models.Embarked]int{
			models.EmbarkedCherbourg:   0,
			models.EmbarkedQueenstown:  1,
			models.EmbarkedSouthampton: 2,
		},
	}
}

// EncodeSex maps a sex category to its training code. Unseen categories
// fall back to the male code.
func (e Encoders) EncodeSex(s models.Sex) int {
	if code, ok := e.Sex[s]; ok {
		return code
	}
	return e.Sex[models.SexMale]
}

// EncodeEmbarked maps a port to its training code. Unseen categories
// fall back to Southampton, the most common port.
func (e Encoders) EncodeEmbarked(p models.Embarked) int {
	if code, ok := e.Embarked[p]; ok {
		return code
	}
	return e.Embarked[models.EmbarkedSouthampton]
}

// Validate checks that the mapping covers every category the feature
// layout expects.
func (e Encoders) Validate() error {
	for _, s := range []models.Sex{models.SexFemale, models.SexMale} {
		if _, ok := e.Sex[s]; !ok {
			return fmt.Errorf("encoders: missing sex category %q", s)
		}
	}
	for _, p := range []models.Embarked{models.EmbarkedCherbourg, models.EmbarkedQueenstown, models.EmbarkedSouthampton} {
		if _, ok := e.Embarked[p]; !ok {
			return fmt.Errorf("encoders: missing embarked category %q", p)
		}
	}
	return nil
}
