package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/titanic/api/internal/middleware"
	"github.com/titanic/api/internal/model"
	"github.com/titanic/api/internal/models"
	"github.com/titanic/api/internal/validate"
)

var tracer = otel.Tracer("github.com/titanic/api/internal/handlers")

// PredictHandler handles prediction endpoints
type PredictHandler struct {
	predictor *model.Predictor
	logger    *zap.Logger
}

// NewPredictHandler creates a new prediction handler
func NewPredictHandler(predictor *model.Predictor, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{predictor: predictor, logger: logger}
}

// PredictRequest is the JSON request body. Pointer fields distinguish
// absent from zero so presence can be validated per field.
type PredictRequest struct {
	Pclass   *int     `json:"pclass"`
	Sex      *string  `json:"sex"`
	Age      *float64 `json:"age"`
	SibSp    *int     `json:"sibsp"`
	Parch    *int     `json:"parch"`
	Fare     *float64 `json:"fare"`
	Embarked *string  `json:"embarked"`
}

// passenger checks presence of all seven fields, then runs domain
// validation. A record is only built when every field passes.
func (r PredictRequest) passenger() (models.PassengerInput, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"pclass", r.Pclass != nil},
		{"sex", r.Sex != nil && *r.Sex != ""},
		{"age", r.Age != nil},
		{"sibsp", r.SibSp != nil},
		{"parch", r.Parch != nil},
		{"fare", r.Fare != nil},
		{"embarked", r.Embarked != nil && *r.Embarked != ""},
	}
	for _, f := range required {
		if !f.present {
			return models.PassengerInput{}, &validate.Error{Field: f.name, Reason: "is required"}
		}
	}

	p := models.PassengerInput{
		Pclass:   *r.Pclass,
		Sex:      models.Sex(*r.Sex),
		Age:      *r.Age,
		SibSp:    *r.SibSp,
		Parch:    *r.Parch,
		Fare:     *r.Fare,
		Embarked: models.Embarked(*r.Embarked),
	}
	if err := validate.Passenger(p); err != nil {
		return models.PassengerInput{}, err
	}
	return p, nil
}

// Predict scores a JSON passenger record
func (h *PredictHandler) Predict(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "Predict")
	defer span.End()

	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, "No JSON data provided")
		return
	}

	passenger, err := req.passenger()
	if err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	h.score(c, passenger)
}

// PredictForm scores a form-encoded passenger record, filling the
// historical defaults for absent fields.
func (h *PredictHandler) PredictForm(c *gin.Context) {
	form := validate.Form{
		Pclass:   c.DefaultPostForm("pclass", "3"),
		Sex:      c.DefaultPostForm("sex", "male"),
		Age:      c.DefaultPostForm("age", "30"),
		SibSp:    c.DefaultPostForm("sibsp", "0"),
		Parch:    c.DefaultPostForm("parch", "0"),
		Fare:     c.DefaultPostForm("fare", "32.2"),
		Embarked: c.DefaultPostForm("embarked", "S"),
	}

	passenger, err := form.Parse()
	if err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	h.score(c, passenger)
}

func (h *PredictHandler) score(c *gin.Context, passenger models.PassengerInput) {
	result, err := h.predictor.Score(passenger)
	if err != nil {
		h.logger.Error("scoring failed", zap.Error(err))
		middleware.InternalError(c, "Prediction failed")
		return
	}

	h.logger.Info("prediction served",
		zap.Int("prediction", result.Prediction),
		zap.Float64("confidence", result.Confidence),
	)
	c.JSON(http.StatusOK, result)
}

// Home returns API metadata for service discovery
func (h *PredictHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Titanic Survival Prediction API",
		"version": "1.0",
		"endpoints": gin.H{
			"predict": "/predict (POST)",
			"health":  "/health (GET)",
		},
	})
}
