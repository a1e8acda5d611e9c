package report

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/prosumption/core/balance"
	corereport "github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/logger"
)

const (
	measurementHourly  = "energy_balance"
	measurementSummary = "energy_balance_summary"
	influxBatchSize    = 5000
)

// InfluxConfig holds the InfluxDB v2 connection settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// Influx writes the hourly derived series and a run summary to InfluxDB.
type Influx struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInflux creates a reporter for the given InfluxDB endpoint.
func NewInflux(cfg InfluxConfig) *Influx {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	return &Influx{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-reporter"),
	}
}

// NewInfluxWithFallback pings the InfluxDB instance and returns a no-op
// reporter when the health check fails.
func NewInfluxWithFallback(cfg InfluxConfig) corereport.Reporter {
	r := NewInflux(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := r.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			r.log.Errorf("influx health check error: %v", err)
		} else {
			r.log.Errorf("influx health status: %s", health.Status)
		}
		r.client.Close()
		return corereport.Nop{}
	}
	return r
}

// Report writes one point per row, timed at HourUTC, then the summary point.
func (r *Influx) Report(ctx context.Context, res corereport.Result) error {
	points, err := hourlyPoints(res)
	if err != nil {
		return err
	}
	for start := 0; start < len(points); start += influxBatchSize {
		end := min(start+influxBatchSize, len(points))
		if err := r.writeAPI.WritePoint(ctx, points[start:end]...); err != nil {
			return err
		}
	}
	if err := r.writeAPI.WritePoint(ctx, summaryPoint(res)); err != nil {
		return err
	}
	r.log.Infof("wrote %d hourly points for run %s", len(points), res.RunID)
	return nil
}

// Close releases the client.
func (r *Influx) Close() error {
	r.client.Close()
	return nil
}

// hourlyPoints skips missing values; rows without any value are left out.
func hourlyPoints(res corereport.Result) ([]*write.Point, error) {
	t, err := exportTable(res)
	if err != nil {
		return nil, err
	}
	points := make([]*write.Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		p := write.NewPointWithMeasurement(measurementHourly).
			AddTag("price_area", t.PriceArea[i]).
			AddTag("run_id", res.RunID)
		fields := 0
		for j, c := range t.Columns {
			v := t.Values[j][i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			p.AddField(c, round3(v))
			fields++
		}
		if fields == 0 {
			continue
		}
		points = append(points, p.SetTime(t.HourUTC[i]))
	}
	return points, nil
}

func summaryPoint(res corereport.Result) *write.Point {
	p := write.NewPointWithMeasurement(measurementSummary).
		AddTag("run_id", res.RunID).
		AddTag("source", res.Source).
		AddField("rows", res.Data.Len()).
		AddField(balance.ColEnergyConsumption+"_sum", round3(res.Totals.EnergyConsumptionSum)).
		AddField(balance.ColSolarAndWind+"_sum", round3(res.Totals.SolarAndWindSum))
	if res.Totals.Scaled() {
		p.AddField("scaling_factor", res.Totals.ScalingFactor)
	}
	if area := res.PriceArea(); area != "" {
		p.AddTag("price_area", area)
	}
	return p.SetTime(res.GeneratedAt)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
