package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/costlab/costwise/internal/common"
	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/samples"
)

// scenarioConfig is the config-file shape of a cost scenario.
type scenarioConfig struct {
	Name              string  `mapstructure:"name"`
	FalsePositiveCost float64 `mapstructure:"fp_cost"`
	FalseNegativeCost float64 `mapstructure:"fn_cost"`
	CompareCalibrated bool    `mapstructure:"compare_calibrated"`
}

// loadScenarios reads cost scenarios from the config file, falling back to a
// single scenario built from the given costs when none are configured.
func loadScenarios(fallbackFP, fallbackFN float64, fallbackCalibrated bool) ([]model.Scenario, error) {
	var configs []scenarioConfig
	if err := viper.UnmarshalKey("scenarios", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}

	if len(configs) == 0 {
		scenario := model.Scenario{
			Name:              "default",
			FalsePositiveCost: fallbackFP,
			FalseNegativeCost: fallbackFN,
			CompareCalibrated: fallbackCalibrated,
		}
		if err := scenario.Validate(); err != nil {
			return nil, err
		}
		return []model.Scenario{scenario}, nil
	}

	scenarios := make([]model.Scenario, 0, len(configs))
	for i, cfg := range configs {
		scenario := model.Scenario{
			Name:              cfg.Name,
			FalsePositiveCost: cfg.FalsePositiveCost,
			FalseNegativeCost: cfg.FalseNegativeCost,
			CompareCalibrated: cfg.CompareCalibrated,
		}
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

// loadDatasets reads every dataset path into memory, failing fast on the
// first unreadable file so the user sees which one is broken.
func loadDatasets(paths []string) ([]*samples.Dataset, error) {
	if len(paths) == 0 {
		return nil, common.NewUserError("no dataset files given; pass at least one --data file", common.ErrEmptyInput)
	}

	datasets := make([]*samples.Dataset, 0, len(paths))
	for _, path := range paths {
		dataset, err := samples.LoadDataset(path)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}
	return datasets, nil
}
