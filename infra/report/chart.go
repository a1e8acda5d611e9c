package report

import (
	"context"
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	corereport "github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/logger"
)

// ChartConfig configures the go-chart renderer.
type ChartConfig struct {
	// Path of the output; ".png" renders a raster image, anything else SVG.
	Path string `json:"path"`
	// Width and Height in pixels.
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Columns []string `json:"columns"`
}

func (c *ChartConfig) setDefaults() {
	if c.Path == "" {
		c.Path = "prosumption.svg"
	}
	if c.Width <= 0 {
		c.Width = 1400
	}
	if c.Height <= 0 {
		c.Height = 800
	}
	if len(c.Columns) == 0 {
		c.Columns = DefaultChartColumns()
	}
}

// Chart renders the derived series with go-chart, SVG by default.
type Chart struct {
	cfg ChartConfig
	log logger.Logger
}

// NewChart creates a Chart reporter.
func NewChart(cfg ChartConfig) *Chart {
	cfg.setDefaults()
	return &Chart{cfg: cfg, log: logger.New("chart-reporter")}
}

// Report renders the chart file.
func (c *Chart) Report(_ context.Context, res corereport.Result) error {
	series, err := collectSeries(res, c.cfg.Columns)
	if err != nil {
		return err
	}
	graph := chart.Chart{
		Title:  ChartTitle,
		Width:  c.cfg.Width,
		Height: c.cfg.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 40},
		},
		XAxis: chart.XAxis{
			Name:           ChartXLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02 15:04"),
			Style:          chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{Name: ChartYLabel},
		Series: make([]chart.Series, 0, len(series)),
	}
	for i, s := range series {
		var xs []time.Time
		var ys []float64
		for _, seg := range s.Segments {
			for _, pt := range seg {
				xs = append(xs, pt.T)
				ys = append(ys, pt.V)
			}
		}
		if len(xs) < 2 {
			c.log.Warnf("series %s has fewer than two values, left out of the chart", s.Column)
			continue
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(i), StrokeWidth: 1},
		})
	}
	if len(graph.Series) == 0 {
		return fmt.Errorf("chart %s: no series with enough values", c.cfg.Path)
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	provider := chart.SVG
	if imageFormat(c.cfg.Path) == "png" {
		provider = chart.PNG
	}
	f, err := os.Create(c.cfg.Path)
	if err != nil {
		return err
	}
	if err := graph.Render(provider, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render chart %s: %w", c.cfg.Path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.log.Infof("chart written to %s", c.cfg.Path)
	return nil
}
