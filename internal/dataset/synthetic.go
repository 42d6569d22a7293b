// Package dataset generates the synthetic passenger manifest the model
// is trained on. Distributions approximate the historical Titanic
// passenger population; survival labels are drawn from a probability
// built out of the well-known survival factors (sex, class, age, fare).
package dataset

import (
	"math"
	"math/rand"
	"sort"

	"github.com/titanic/api/internal/models"
)

// DefaultSeed keeps the generated manifest reproducible across runs.
const DefaultSeed = 42

// DefaultSamples is the manifest size used for training.
const DefaultSamples = 1000

// Passenger is one labeled training row.
type Passenger struct {
	Input    models.PassengerInput
	Survived int
}

// Generate produces n labeled passengers from the seeded distributions.
func Generate(n int, seed int64) []Passenger {
	rng := rand.New(rand.NewSource(seed))

	pclass := make([]int, n)
	sex := make([]models.Sex, n)
	age := make([]float64, n)
	sibsp := make([]int, n)
	parch := make([]int, n)
	fare := make([]float64, n)
	embarked := make([]models.Embarked, n)

	for i := 0; i < n; i++ {
		pclass[i] = choiceInt(rng, []int{1, 2, 3}, []float64{0.2, 0.2, 0.6})
		if rng.Float64() < 0.65 {
			sex[i] = models.SexMale
		} else {
			sex[i] = models.SexFemale
		}
		age[i] = clip(rng.NormFloat64()*12+30, 1, 80)
		sibsp[i] = choiceInt(rng, []int{0, 1, 2, 3, 4}, []float64{0.7, 0.15, 0.1, 0.03, 0.02})
		parch[i] = choiceInt(rng, []int{0, 1, 2, 3}, []float64{0.8, 0.12, 0.06, 0.02})
		fare[i] = clip(math.Exp(rng.NormFloat64()*1+3), 5, 500)
		embarked[i] = choiceEmbarked(rng, []float64{0.2, 0.1, 0.7})
	}

	fareQ75 := quantile(fare, 0.75)

	passengers := make([]Passenger, n)
	for i := 0; i < n; i++ {
		prob := rng.NormFloat64() * 0.1
		if sex[i] == models.SexFemale {
			prob += 0.4
		}
		switch pclass[i] {
		case 1:
			prob += 0.3
		case 2:
			prob += 0.15
		}
		if age[i] < 16 {
			prob += 0.2
		}
		if fare[i] > fareQ75 {
			prob += 0.1
		}
		prob = clip(prob, 0, 1)

		survived := 0
		if rng.Float64() < prob {
			survived = 1
		}

		passengers[i] = Passenger{
			Input: models.PassengerInput{
				Pclass:   pclass[i],
				Sex:      sex[i],
				Age:      age[i],
				SibSp:    sibsp[i],
				Parch:    parch[i],
				Fare:     fare[i],
				Embarked: embarked[i],
			},
			Survived: survived,
		}
	}
	return passengers
}

// Split partitions passengers into train and test sets, shuffling with
// the given seed first.
func Split(passengers []Passenger, testFraction float64, seed int64) (train, test []Passenger) {
	shuffled := make([]Passenger, len(passengers))
	copy(shuffled, passengers)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled)) * testFraction)
	return shuffled[nTest:], shuffled[:nTest]
}

func choiceInt(rng *rand.Rand, values []int, probs []float64) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func choiceEmbarked(rng *rand.Rand, probs []float64) models.Embarked {
	ports := []models.Embarked{
		models.EmbarkedCherbourg,
		models.EmbarkedQueenstown,
		models.EmbarkedSouthampton,
	}
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return ports[i]
		}
	}
	return ports[len(ports)-1]
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// quantile computes the q-th quantile with linear interpolation between
// order statistics.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
