package report

import (
	"context"
	"encoding/json"
	"time"

	corereport "github.com/kilianp07/prosumption/core/report"
	"github.com/kilianp07/prosumption/infra/mqtt"
)

// MQTTConfig configures the summary publisher.
type MQTTConfig struct {
	mqtt.Config `json:",squash"`
	Topic string `json:"topic"`
}

// Publisher sends a payload on a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Disconnect()
}

// Summary is the JSON document published for a run.
type Summary struct {
	RunID                string         `json:"run_id"`
	Source               string         `json:"source"`
	PriceArea            string         `json:"price_area,omitempty"`
	GeneratedAt          time.Time      `json:"generated_at"`
	Rows                 int            `json:"rows"`
	RangeRows            int            `json:"range_rows"`
	RangeStart           time.Time      `json:"range_start"`
	RangeEnd             time.Time      `json:"range_end"`
	EnergyConsumptionSum *float64       `json:"energyconsumption_sum"`
	SolarAndWindSum      *float64       `json:"solarandwind_sum"`
	ScalingFactor        *float64       `json:"scaling_factor"`
	Unparseable          map[string]int `json:"unparseable,omitempty"`
}

// NewSummary builds the published document; non-finite values become null.
func NewSummary(res corereport.Result) Summary {
	s := Summary{
		RunID:                res.RunID,
		Source:               res.Source,
		PriceArea:            res.PriceArea(),
		GeneratedAt:          res.GeneratedAt.UTC(),
		RangeStart:           res.Range.Start,
		RangeEnd:             res.Range.End,
		EnergyConsumptionSum: finite(res.Totals.EnergyConsumptionSum),
		SolarAndWindSum:      finite(res.Totals.SolarAndWindSum),
		ScalingFactor:        finite(res.Totals.ScalingFactor),
	}
	if res.Data != nil {
		s.Rows = res.Data.Len()
	}
	if res.Subset != nil {
		s.RangeRows = res.Subset.Len()
	}
	if res.Coercion.Total() > 0 {
		s.Unparseable = res.Coercion
	}
	return s
}

func finite(v float64) *float64 {
	if nullable(v) == nil {
		return nil
	}
	return &v
}

// MQTT publishes the run summary to a broker.
type MQTT struct {
	pub   Publisher
	topic string
}

// NewMQTT connects to the broker described by cfg.
func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	cli, err := mqtt.NewPahoClient(cfg.Config)
	if err != nil {
		return nil, err
	}
	return NewMQTTWithPublisher(cli, cfg.Topic), nil
}

// NewMQTTWithPublisher uses an existing publisher.
func NewMQTTWithPublisher(pub Publisher, topic string) *MQTT {
	if topic == "" {
		topic = "prosumption/summary"
	}
	return &MQTT{pub: pub, topic: topic}
}

// Report publishes the summary.
func (m *MQTT) Report(_ context.Context, res corereport.Result) error {
	payload, err := json.Marshal(NewSummary(res))
	if err != nil {
		return err
	}
	return m.pub.Publish(m.topic, payload)
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.pub.Disconnect()
	return nil
}
