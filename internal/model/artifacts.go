package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/titanic/api/internal/forest"
)

// Artifact file names under the models directory.
const (
	ModelFile    = "titanic_model.json"
	EncodersFile = "label_encoders.json"
)

type modelArtifact struct {
	FeatureColumns []string       `json:"feature_columns"`
	Forest         *forest.Forest `json:"forest"`
}

// Save writes the model and encoder artifacts into dir, creating it if
// needed.
func Save(dir string, f *forest.Forest, enc Encoders) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create models dir: %w", err)
	}

	artifact := modelArtifact{
		FeatureColumns: FeatureColumns,
		Forest:         f,
	}
	if err := writeJSON(filepath.Join(dir, ModelFile), artifact); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, EncodersFile), enc); err != nil {
		return fmt.Errorf("write encoders artifact: %w", err)
	}
	return nil
}

// Load reads the artifacts back and builds a predictor. Any layout or
// encoding mismatch with the current feature columns fails the load.
func Load(dir string) (*Predictor, error) {
	var artifact modelArtifact
	if err := readJSON(filepath.Join(dir, ModelFile), &artifact); err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var enc Encoders
	if err := readJSON(filepath.Join(dir, EncodersFile), &enc); err != nil {
		return nil, fmt.Errorf("read encoders artifact: %w", err)
	}

	if len(artifact.FeatureColumns) != len(FeatureColumns) {
		return nil, fmt.Errorf("model artifact has %d feature columns, expected %d",
			len(artifact.FeatureColumns), len(FeatureColumns))
	}
	for i, col := range artifact.FeatureColumns {
		if col != FeatureColumns[i] {
			return nil, fmt.Errorf("model artifact column %d is %q, expected %q", i, col, FeatureColumns[i])
		}
	}
	if artifact.Forest == nil || len(artifact.Forest.Trees) == 0 {
		return nil, fmt.Errorf("model artifact carries no trees")
	}

	return NewPredictor(artifact.Forest, enc)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
