// Command smoke exercises a running API end to end: health, metadata,
// and a prediction round-trip checked against the response contract.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/titanic/api/internal/client"
	"github.com/titanic/api/internal/models"
)

func main() {
	apiURL := flag.String("url", "http://localhost:8080", "prediction API base URL")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cli := client.New(*apiURL, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := cli.Health(ctx); err != nil {
		logger.Fatal("health check failed", zap.Error(err))
	}
	logger.Info("health check passed")

	passenger := models.PassengerInput{
		Pclass:   3,
		Sex:      models.SexMale,
		Age:      22,
		SibSp:    1,
		Parch:    0,
		Fare:     7.25,
		Embarked: models.EmbarkedSouthampton,
	}

	first, err := cli.Predict(ctx, passenger)
	if err != nil {
		logger.Fatal("prediction failed", zap.Error(err))
	}
	logger.Info("prediction received",
		zap.Int("prediction", first.Prediction),
		zap.Float64("survival_probability", first.SurvivalProbability),
		zap.Float64("confidence", first.Confidence),
	)

	// Contract checks
	if first.Prediction != 0 && first.Prediction != 1 {
		logger.Fatal("prediction outside {0,1}", zap.Int("prediction", first.Prediction))
	}
	if math.Abs(first.SurvivalProbability+first.DeathProbability-1) > 1e-9 {
		logger.Fatal("probabilities do not sum to 1",
			zap.Float64("survival", first.SurvivalProbability),
			zap.Float64("death", first.DeathProbability),
		)
	}
	if first.Confidence != math.Max(first.SurvivalProbability, first.DeathProbability) {
		logger.Fatal("confidence is not the max probability")
	}

	// Determinism: an identical submission must score identically.
	second, err := cli.Predict(ctx, passenger)
	if err != nil {
		logger.Fatal("repeat prediction failed", zap.Error(err))
	}
	if first != second {
		logger.Fatal("identical inputs scored differently")
	}

	logger.Info("smoke test passed")
}
