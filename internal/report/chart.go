package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/costlab/costwise/internal/cost"
	"github.com/costlab/costwise/internal/curve"
	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/samples"
)

// WriteCostChart renders the cost-vs-threshold curve of each dataset as an
// HTML page, one line chart per model with one series per scenario.
func WriteCostChart(w io.Writer, datasets []*samples.Dataset, scenarios []model.Scenario) error {
	page := components.NewPage()
	page.PageTitle = "Cost vs threshold"

	for _, dataset := range datasets {
		line, err := costChart(dataset, scenarios)
		if err != nil {
			return err
		}
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// SaveCostChart writes the chart page to a file.
func SaveCostChart(path string, datasets []*samples.Dataset, scenarios []model.Scenario) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return WriteCostChart(file, datasets, scenarios)
}

func costChart(dataset *samples.Dataset, scenarios []model.Scenario) (*charts.Line, error) {
	thresholdCurve, err := curve.Build(dataset.Samples.Labels, dataset.Samples.Scores)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", dataset.Model, err)
	}

	xAxis := make([]string, thresholdCurve.Len())
	for i, threshold := range thresholdCurve.Thresholds {
		xAxis[i] = fmt.Sprintf("%.4g", threshold)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Total cost vs threshold: %s", dataset.Model),
			Subtitle: fmt.Sprintf("%d examples, %d candidate thresholds", dataset.Samples.Len(), thresholdCurve.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "threshold"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "total cost"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(xAxis)
	for _, scenario := range scenarios {
		costs, costErr := cost.TotalCosts(thresholdCurve, scenario)
		if costErr != nil {
			return nil, fmt.Errorf("model %s, scenario %s: %w", dataset.Model, scenario.Name, costErr)
		}

		points := make([]opts.LineData, len(costs))
		for i, value := range costs {
			points[i] = opts.LineData{Value: value}
		}
		line.AddSeries(scenario.Name, points)
	}

	return line, nil
}
