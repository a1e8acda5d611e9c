package report

import (
	"os"

	"github.com/kilianp07/prosumption/core/factory"
	corereport "github.com/kilianp07/prosumption/core/report"
)

// init registers the built-in reporters.
func init() {
	_ = corereport.Register("nop", func(map[string]any) (corereport.Reporter, error) {
		return corereport.Nop{}, nil
	})
	_ = corereport.Register("console", decoded(func(c ConsoleConfig) (corereport.Reporter, error) {
		return NewConsole(os.Stdout, c), nil
	}))
	_ = corereport.Register("plot", decoded(func(c PlotConfig) (corereport.Reporter, error) {
		return NewPlot(c), nil
	}))
	_ = corereport.Register("chart", decoded(func(c ChartConfig) (corereport.Reporter, error) {
		return NewChart(c), nil
	}))
	_ = corereport.Register("csv", decoded(func(c CSVConfig) (corereport.Reporter, error) {
		return NewCSV(c), nil
	}))
	_ = corereport.Register("xlsx", decoded(func(c XLSXConfig) (corereport.Reporter, error) {
		return NewXLSX(c), nil
	}))
	_ = corereport.Register("pdf", decoded(func(c PDFConfig) (corereport.Reporter, error) {
		return NewPDF(c), nil
	}))
	_ = corereport.Register("sqlite", decoded(func(c SQLiteConfig) (corereport.Reporter, error) {
		s, err := NewSQLiteStore(c.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}))
	_ = corereport.Register("influx", decoded(func(c InfluxConfig) (corereport.Reporter, error) {
		return NewInfluxWithFallback(c), nil
	}))
	_ = corereport.Register("prometheus", decoded(func(c PromConfig) (corereport.Reporter, error) {
		p, err := NewProm(c)
		if err != nil {
			return nil, err
		}
		return p, nil
	}))
	_ = corereport.Register("mqtt", decoded(func(c MQTTConfig) (corereport.Reporter, error) {
		m, err := NewMQTT(c)
		if err != nil {
			return nil, err
		}
		return m, nil
	}))
}

func decoded[C any](build func(C) (corereport.Reporter, error)) factory.Factory[corereport.Reporter] {
	return func(conf map[string]any) (corereport.Reporter, error) {
		var c C
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return build(c)
	}
}
