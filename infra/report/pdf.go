package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	corereport "github.com/kilianp07/prosumption/core/report"
)

// PDFConfig configures the PDF summary.
type PDFConfig struct {
	Path string `json:"path"`
	// NoChart leaves the chart out of the document.
	NoChart bool     `json:"no_chart"`
	Columns []string `json:"columns"`
}

// PDF renders a one page summary with totals, statistics and the chart.
type PDF struct {
	cfg PDFConfig
}

// NewPDF creates a PDF reporter.
func NewPDF(cfg PDFConfig) *PDF {
	if cfg.Path == "" {
		cfg.Path = "prosumption.pdf"
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = DefaultChartColumns()
	}
	return &PDF{cfg: cfg}
}

// Report writes the document.
func (p *PDF) Report(_ context.Context, res corereport.Result) error {
	doc, err := p.build(res)
	if err != nil {
		return err
	}
	return doc.OutputFileAndClose(p.cfg.Path)
}

func (p *PDF) build(res corereport.Result) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 8, "Energy balance: consumption and renewable generation")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Source: %s", res.Source),
		fmt.Sprintf("Price area: %s", res.PriceArea()),
		fmt.Sprintf("Run: %s", res.RunID),
		fmt.Sprintf("Generated: %s", res.GeneratedAt.UTC().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Sum of Energy Consumption: %sMWh", formatValue(res.Totals.EnergyConsumptionSum)),
		fmt.Sprintf("Sum of Solar and Wind: %sMWh", formatValue(res.Totals.SolarAndWindSum)),
		fmt.Sprintf("The scaling factor: %s", formatValue(res.Totals.ScalingFactor)),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if len(res.Stats) > 0 {
		widths := []float64{60, 20, 20, 30, 30, 30, 30}
		pdf.SetFont("Arial", "B", 9)
		for i, h := range []string{"Column", "Count", "Missing", "Mean", "Std", "Min", "Max"} {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, s := range res.Stats {
			cells := []string{s.Column, fmt.Sprint(s.Count), fmt.Sprint(s.Missing),
				formatCell(s.Mean), formatCell(s.Std), formatCell(s.Min), formatCell(s.Max)}
			for i, c := range cells {
				align := "R"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if !p.cfg.NoChart && res.Data != nil && res.Data.Len() > 0 {
		var img bytes.Buffer
		if err := renderPlot(&img, res, p.cfg.Columns, 10, 4.5, "png"); err != nil {
			return nil, fmt.Errorf("chart: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("chart", opts, &img)
		pdf.AddPage()
		pdf.ImageOptions("chart", 10, 10, 277, 0, false, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return pdf, nil
}
