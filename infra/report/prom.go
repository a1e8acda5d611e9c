package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/prosumption/core/balance"
	corereport "github.com/kilianp07/prosumption/core/report"
)

// PromConfig configures the Prometheus textfile export.
type PromConfig struct {
	// Path of the textfile read by the node exporter textfile collector.
	Path string `json:"path"`
}

// Prom exposes the run totals as gauges and writes them in the Prometheus
// text format.
type Prom struct {
	path     string
	gatherer prometheus.Gatherer
	totals   *prometheus.GaugeVec
	factor   *prometheus.GaugeVec
	rows     *prometheus.GaugeVec
	missing  *prometheus.GaugeVec
}

// NewProm registers the gauges on a private registry.
func NewProm(cfg PromConfig) (*Prom, error) {
	reg := prometheus.NewRegistry()
	return NewPromWithRegistry(cfg, reg, reg)
}

// NewPromWithRegistry registers the gauges on reg and gathers from g. A nil
// registerer defaults to the global Prometheus registerer.
func NewPromWithRegistry(cfg PromConfig, reg prometheus.Registerer, g prometheus.Gatherer) (*Prom, error) {
	if cfg.Path == "" {
		cfg.Path = "prosumption.prom"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	p := &Prom{path: cfg.Path, gatherer: g}
	var err error
	if p.totals, err = registerGaugeVec(reg, prometheus.GaugeOpts{
		Name: "prosumption_total_mwh",
		Help: "Sum over the analysed hours, in MWh",
	}, "series", "price_area"); err != nil {
		return nil, err
	}
	if p.factor, err = registerGaugeVec(reg, prometheus.GaugeOpts{
		Name: "prosumption_scaling_factor",
		Help: "Ratio of energy consumption to solar and wind generation",
	}, "price_area"); err != nil {
		return nil, err
	}
	if p.rows, err = registerGaugeVec(reg, prometheus.GaugeOpts{
		Name: "prosumption_rows",
		Help: "Number of hourly rows analysed",
	}, "dataset"); err != nil {
		return nil, err
	}
	if p.missing, err = registerGaugeVec(reg, prometheus.GaugeOpts{
		Name: "prosumption_unparseable_cells",
		Help: "Cells that could not be read as numbers",
	}, "column"); err != nil {
		return nil, err
	}
	return p, nil
}

func registerGaugeVec(reg prometheus.Registerer, opts prometheus.GaugeOpts, labels ...string) (*prometheus.GaugeVec, error) {
	g := prometheus.NewGaugeVec(opts, labels)
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.GaugeVec), nil
		}
		return nil, err
	}
	return g, nil
}

// Report sets the gauges and writes the textfile.
func (p *Prom) Report(_ context.Context, res corereport.Result) error {
	area := res.PriceArea()
	p.totals.WithLabelValues(balance.ColEnergyConsumption, area).Set(res.Totals.EnergyConsumptionSum)
	p.totals.WithLabelValues(balance.ColSolarAndWind, area).Set(res.Totals.SolarAndWindSum)
	p.factor.WithLabelValues(area).Set(res.Totals.ScalingFactor)
	if res.Data != nil {
		p.rows.WithLabelValues("all").Set(float64(res.Data.Len()))
	}
	if res.Subset != nil {
		p.rows.WithLabelValues("range").Set(float64(res.Subset.Len()))
	}
	for col, n := range res.Coercion {
		p.missing.WithLabelValues(col).Set(float64(n))
	}
	if err := prometheus.WriteToTextfile(p.path, p.gatherer); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}
