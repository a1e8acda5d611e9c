package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	corereport "github.com/kilianp07/prosumption/core/report"
)

const (
	summarySheet = "summary"
	seriesSheet  = "series"
)

// XLSXConfig configures the workbook exporter.
type XLSXConfig struct {
	Path string `json:"path"`
}

// XLSX writes a workbook with a summary sheet and the hourly series.
type XLSX struct {
	cfg XLSXConfig
}

// NewXLSX creates an XLSX exporter.
func NewXLSX(cfg XLSXConfig) *XLSX {
	if cfg.Path == "" {
		cfg.Path = "prosumption.xlsx"
	}
	return &XLSX{cfg: cfg}
}

// Report builds and saves the workbook.
func (x *XLSX) Report(_ context.Context, res corereport.Result) error {
	t, err := exportTable(res)
	if err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, res); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if _, err := f.NewSheet(seriesSheet); err != nil {
		return err
	}
	if err := writeSeries(f, t); err != nil {
		return fmt.Errorf("series sheet: %w", err)
	}
	return f.SaveAs(x.cfg.Path)
}

func writeSummary(f *excelize.File, res corereport.Result) error {
	rows := [][]any{
		{"Run", res.RunID},
		{"Source", res.Source},
		{"Generated", res.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Price area", res.PriceArea()},
		{"Sum of Energy Consumption (MWh)", nullable(res.Totals.EnergyConsumptionSum)},
		{"Sum of Solar and Wind (MWh)", nullable(res.Totals.SolarAndWindSum)},
		{"Scaling factor", nullable(res.Totals.ScalingFactor)},
		{},
		{"column", "count", "missing", "mean", "std", "min", "max"},
	}
	for _, s := range res.Stats {
		rows = append(rows, []any{s.Column, s.Count, s.Missing,
			nullable(s.Mean), nullable(s.Std), nullable(s.Min), nullable(s.Max)})
	}
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func writeSeries(f *excelize.File, t table) error {
	sw, err := f.NewStreamWriter(seriesSheet)
	if err != nil {
		return err
	}
	header := []any{"HourUTC", "HourDK", "PriceArea"}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		row := make([]any, 0, len(header))
		row = append(row, t.HourUTC[i].Format(time.RFC3339), t.HourDK[i].Format("2006-01-02 15:04"), t.PriceArea[i])
		for _, v := range t.Values {
			row = append(row, nullable(v[i]))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}
