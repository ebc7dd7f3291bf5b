package samples

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/costlab/costwise/internal/common"
)

// Dataset is one model's scored examples as loaded from disk.
type Dataset struct {
	Model   string
	Samples *Set
}

// LoadDataset reads a dataset file, dispatching on extension. JSON files
// carry the model name inline; CSV files take theirs from the file name.
func LoadDataset(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(file, path)
	case ".csv":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return loadCSV(file, path, name)
	default:
		return nil, fmt.Errorf("%w: unsupported dataset format %q in %s", common.ErrInvalidInput, filepath.Ext(path), path)
	}
}

type jsonDataset struct {
	Model  string          `json:"model"`
	Labels []int           `json:"labels"`
	Scores json.RawMessage `json:"scores"`
}

func loadJSON(r io.Reader, path string) (*Dataset, error) {
	var raw jsonDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if raw.Model == "" {
		return nil, fmt.Errorf("%w: dataset %s is missing a model name", common.ErrInvalidInput, path)
	}

	scores, err := decodeScores(raw.Scores)
	if err != nil {
		return nil, fmt.Errorf("dataset %s (model %s): %w", path, raw.Model, err)
	}

	set, err := New(raw.Labels, scores)
	if err != nil {
		return nil, fmt.Errorf("dataset %s (model %s): %w", path, raw.Model, err)
	}

	return &Dataset{Model: raw.Model, Samples: set}, nil
}

// decodeScores accepts scores either as a flat array or as a nested array
// (the shape some model exporters emit), flattening the latter.
func decodeScores(raw json.RawMessage) ([]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var nested [][]float64
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("%w: scores must be a flat or nested numeric array", common.ErrInvalidInput)
	}
	return FlattenScores(nested), nil
}

func loadCSV(r io.Reader, path, modelName string) (*Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: dataset %s has no rows", common.ErrEmptyInput, path)
	}

	// Skip a label,score header row if present.
	start := 0
	if len(records[0]) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), "label") {
		start = 1
	}

	var labels []int
	var scores []float64
	for i, record := range records[start:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("%w: dataset %s row %d has %d columns, want label,score", common.ErrInvalidInput, path, start+i+1, len(record))
		}

		label, parseErr := strconv.Atoi(strings.TrimSpace(record[0]))
		if parseErr != nil {
			return nil, fmt.Errorf("%w: dataset %s row %d has non-integer label %q", common.ErrInvalidInput, path, start+i+1, record[0])
		}
		score, parseErr := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: dataset %s row %d has non-numeric score %q", common.ErrInvalidInput, path, start+i+1, record[1])
		}

		labels = append(labels, label)
		scores = append(scores, score)
	}

	set, err := New(labels, scores)
	if err != nil {
		return nil, fmt.Errorf("dataset %s (model %s): %w", path, modelName, err)
	}

	return &Dataset{Model: modelName, Samples: set}, nil
}
