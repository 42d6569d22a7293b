package models

// Sex is the passenger sex category used at training time
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Embarked is the port of embarkation
type Embarked string

const (
	EmbarkedCherbourg   Embarked = "C"
	EmbarkedQueenstown  Embarked = "Q"
	EmbarkedSouthampton Embarked = "S"
)

// Field bounds shared by the validator and the form-level clamps.
// Both layers enforce the same domains independently.
const (
	AgeMin   = 0.0
	AgeMax   = 100.0
	SibSpMin = 0
	SibSpMax = 10
	ParchMin = 0
	ParchMax = 10
	FareMin  = 0.0
)

// PassengerInput is a fully validated prediction request. It is only
// constructed by the validator; partially valid records do not exist
// downstream of it.
type PassengerInput struct {
	Pclass   int      `json:"pclass"`
	Sex      Sex      `json:"sex"`
	Age      float64  `json:"age"`
	SibSp    int      `json:"sibsp"`
	Parch    int      `json:"parch"`
	Fare     float64  `json:"fare"`
	Embarked Embarked `json:"embarked"`
}

// PredictionResult is the scoring service output.
type PredictionResult struct {
	Prediction          int     `json:"prediction"`
	SurvivalProbability float64 `json:"survival_probability"`
	DeathProbability    float64 `json:"death_probability"`
	PredictionText      string  `json:"prediction_text"`
	Confidence          float64 `json:"confidence"`
}

// Survived reports whether the predicted class is survival.
func (r PredictionResult) Survived() bool {
	return r.Prediction == 1
}

// Prediction text values, fixed wire contract.
const (
	TextSurvived    = "Survived"
	TextNotSurvived = "Did not survive"
)
