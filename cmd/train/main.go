// Command train fits the survival model over the synthetic passenger
// manifest and writes the model and encoder artifacts the API serves
// from.
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/titanic/api/internal/config"
	"github.com/titanic/api/internal/dataset"
	"github.com/titanic/api/internal/forest"
	"github.com/titanic/api/internal/model"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("generating synthetic passenger manifest",
		zap.Int("samples", dataset.DefaultSamples),
		zap.Int64("seed", dataset.DefaultSeed),
	)
	passengers := dataset.Generate(dataset.DefaultSamples, dataset.DefaultSeed)
	train, test := dataset.Split(passengers, 0.2, dataset.DefaultSeed)

	encoders := model.TrainingEncoders()
	trainX, trainY := featureRows(train, encoders)
	testX, testY := featureRows(test, encoders)

	forestCfg := forest.DefaultConfig()
	logger.Info("fitting random forest",
		zap.Int("trees", forestCfg.Trees),
		zap.Int("max_depth", forestCfg.MaxDepth),
		zap.Int("train_rows", len(trainX)),
	)
	fitted, err := forest.Fit(trainX, trainY, 2, forestCfg)
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}

	logger.Info("model fitted",
		zap.Float64("train_accuracy", fitted.Accuracy(trainX, trainY)),
		zap.Float64("test_accuracy", fitted.Accuracy(testX, testY)),
	)

	if err := model.Save(cfg.ModelDir, fitted, encoders); err != nil {
		logger.Fatal("failed to save artifacts", zap.Error(err))
	}
	logger.Info("artifacts written", zap.String("dir", cfg.ModelDir))
}

// featureRows encodes labeled passengers into model input rows.
func featureRows(passengers []dataset.Passenger, enc model.Encoders) ([][]float64, []int) {
	x := make([][]float64, len(passengers))
	y := make([]int, len(passengers))
	for i, p := range passengers {
		x[i] = model.FeatureRow(p.Input, enc)
		y[i] = p.Survived
	}
	return x, y
}
