package report

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	corereport "github.com/kilianp07/prosumption/core/report"
)

// CSVConfig configures the CSV exporter.
type CSVConfig struct {
	Path string `json:"path"`
	// Delimiter is a single character; ',' when empty.
	Delimiter string `json:"delimiter"`
}

// CSV writes the hourly derived series to a CSV file.
type CSV struct {
	cfg   CSVConfig
	comma rune
}

// NewCSV creates a CSV exporter.
func NewCSV(cfg CSVConfig) *CSV {
	if cfg.Path == "" {
		cfg.Path = "prosumption.csv"
	}
	comma := ','
	if r, _ := utf8.DecodeRuneInString(cfg.Delimiter); r != utf8.RuneError {
		comma = r
	}
	return &CSV{cfg: cfg, comma: comma}
}

// Report writes one line per hour.
func (c *CSV) Report(_ context.Context, res corereport.Result) error {
	t, err := exportTable(res)
	if err != nil {
		return err
	}
	f, err := os.Create(c.cfg.Path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	cw.Comma = c.comma
	header := append([]string{"hour_utc", "hour_dk", "price_area"}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for i := 0; i < t.Len(); i++ {
		rec[0] = t.HourUTC[i].Format(time.RFC3339)
		rec[1] = t.HourDK[i].Format("2006-01-02T15:04:05")
		rec[2] = t.PriceArea[i]
		for j, v := range t.Values {
			rec[3+j] = ""
			if !math.IsNaN(v[i]) {
				rec[3+j] = strconv.FormatFloat(v[i], 'f', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}
