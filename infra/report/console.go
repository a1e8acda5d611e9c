package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/prosumption/core/balance"
	corereport "github.com/kilianp07/prosumption/core/report"
)

// ConsoleConfig configures the text reporter.
type ConsoleConfig struct {
	// Rows is the number of preview rows; 5 when zero.
	Rows int `json:"rows"`
	// HideStats suppresses the summary statistics table.
	HideStats bool `json:"hide_stats"`
}

// Console writes the totals, a preview of the derived columns and summary
// statistics as plain text.
type Console struct {
	w   io.Writer
	cfg ConsoleConfig
}

// NewConsole creates a Console writing to w, or stdout when w is nil.
func NewConsole(w io.Writer, cfg ConsoleConfig) *Console {
	if w == nil {
		w = os.Stdout
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 5
	}
	return &Console{w: w, cfg: cfg}
}

// Report prints res.
func (c *Console) Report(_ context.Context, res corereport.Result) error {
	t := res.Totals
	if _, err := fmt.Fprintf(c.w, "Sum of Energy Consumption: %sMWh\n", formatValue(t.EnergyConsumptionSum)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "Sum of Solar and Wind: %sMWh\n", formatValue(t.SolarAndWindSum)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "The scaling factor: %s\n", formatValue(t.ScalingFactor)); err != nil {
		return err
	}
	if res.Data == nil {
		return nil
	}
	if err := c.preview(res.Data); err != nil {
		return err
	}
	if res.Subset != nil {
		if _, err := fmt.Fprintf(c.w, "\nRows with HourDK in [%s, %s]: %d of %d\n",
			res.Range.Start.Format(balance.TimestampLayout), res.Range.End.Format(balance.TimestampLayout),
			res.Subset.Len(), res.Data.Len()); err != nil {
			return err
		}
	}
	if c.cfg.HideStats || len(res.Stats) == 0 {
		return nil
	}
	return c.stats(res.Stats)
}

func (c *Console) preview(ds *balance.Dataset) error {
	cols := balance.PreviewColumns()
	n := min(c.cfg.Rows, ds.Len())
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, col := range cols {
		fmt.Fprintf(tw, "%s\t", col)
	}
	fmt.Fprintln(tw)

	hours, err := ds.Strings(balance.ColHourDK)
	if err != nil {
		return err
	}
	values := make([][]float64, 0, len(cols)-1)
	for _, col := range cols[1:] {
		v, err := ds.Floats(col)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(tw, "%d\t%s\t", i, hours[i])
		for _, v := range values {
			fmt.Fprintf(tw, "%s\t", formatCell(v[i]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func (c *Console) stats(stats []balance.ColumnStats) error {
	if _, err := fmt.Fprintln(c.w, "\nSummary statistics (MWh):"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\tcount\tmissing\tmean\tstd\tmin\tmax\t")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", s.Column,
			strconv.Itoa(s.Count), strconv.Itoa(s.Missing),
			formatCell(s.Mean), formatCell(s.Std), formatCell(s.Min), formatCell(s.Max))
	}
	return tw.Flush()
}
