package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	corereport "github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/logger"
)

// PlotConfig configures the gonum/plot chart.
type PlotConfig struct {
	// Path of the image; the extension selects the format (png, svg, pdf...).
	Path string `json:"path"`
	// Width and Height in inches.
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Columns []string `json:"columns"`
}

func (c *PlotConfig) setDefaults() {
	if c.Path == "" {
		c.Path = "prosumption.png"
	}
	if c.Width <= 0 {
		c.Width = 14
	}
	if c.Height <= 0 {
		c.Height = 8
	}
	if len(c.Columns) == 0 {
		c.Columns = DefaultChartColumns()
	}
}

// Plot renders the derived series as a line chart file.
type Plot struct {
	cfg PlotConfig
	log logger.Logger
}

// NewPlot creates a Plot reporter.
func NewPlot(cfg PlotConfig) *Plot {
	cfg.setDefaults()
	return &Plot{cfg: cfg, log: logger.New("plot-reporter")}
}

// Report writes the chart to the configured path.
func (p *Plot) Report(_ context.Context, res corereport.Result) error {
	pl, err := buildPlot(res, p.cfg.Columns, p.log)
	if err != nil {
		return err
	}
	if err := pl.Save(vg.Length(p.cfg.Width)*vg.Inch, vg.Length(p.cfg.Height)*vg.Inch, p.cfg.Path); err != nil {
		return fmt.Errorf("save chart %s: %w", p.cfg.Path, err)
	}
	p.log.Infof("chart written to %s", p.cfg.Path)
	return nil
}

// renderPlot writes the chart in the given format ("png", "svg"...) to w.
func renderPlot(w io.Writer, res corereport.Result, cols []string, width, height float64, format string) error {
	pl, err := buildPlot(res, cols, logger.NopLogger{})
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func buildPlot(res corereport.Result, cols []string, log logger.Logger) (*plot.Plot, error) {
	series, err := collectSeries(res, cols)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = ChartTitle
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = ChartXLabel
	p.Y.Label.Text = ChartYLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02\n15:04"}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if s.points() == 0 {
			log.Warnf("series %s has no values, left out of the chart", s.Column)
			continue
		}
		for j, seg := range s.Segments {
			xys := make(plotter.XYs, len(seg))
			for k, pt := range seg {
				xys[k].X = float64(pt.T.Unix())
				xys[k].Y = pt.V
			}
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", s.Column, err)
			}
			line.Color = plotutil.Color(i)
			line.Width = vg.Points(1)
			p.Add(line)
			if j == 0 {
				p.Legend.Add(s.Label, line)
			}
		}
	}
	return p, nil
}

func imageFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
