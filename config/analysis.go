package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/kilianp07/prosumption/core/balance"
)

// InputConfig locates the energy-balance file.
type InputConfig struct {
	Path string `json:"path"`
	// Delimiter is a single character.
	Delimiter string `json:"delimiter"`
}

// SetDefaults applies the defaults of the Energinet export.
func (c *InputConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "ElectricityBalanceNonv.csv"
	}
	if c.Delimiter == "" {
		c.Delimiter = ";"
	}
}

// Validate checks mandatory fields.
func (c InputConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

// DelimiterRune returns the delimiter as a rune.
func (c InputConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// RangeConfig selects the inclusive analysis window.
type RangeConfig struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Column string `json:"column"`
	// ApplyToDerivations runs the derivations on the filtered rows instead
	// of the whole table.
	ApplyToDerivations bool `json:"apply_to_derivations"`
}

func (c *RangeConfig) SetDefaults() {
	if c.Start == "" {
		c.Start = "2023-01-11"
	}
	if c.End == "" {
		c.End = "2024-10-31"
	}
	if c.Column == "" {
		c.Column = balance.ColHourDK
	}
}

func (c RangeConfig) Validate() error {
	if c.Column != balance.ColHourDK && c.Column != balance.ColHourUTC {
		return fmt.Errorf("column must be %s or %s, got %q", balance.ColHourDK, balance.ColHourUTC, c.Column)
	}
	r, err := c.TimeRange()
	if err != nil {
		return err
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("end %s is before start %s", c.End, c.Start)
	}
	return nil
}

// TimeRange parses the bounds.
func (c RangeConfig) TimeRange() (balance.TimeRange, error) {
	start, err := balance.ParseBound(c.Start)
	if err != nil {
		return balance.TimeRange{}, err
	}
	end, err := balance.ParseBound(c.End)
	if err != nil {
		return balance.TimeRange{}, err
	}
	return balance.TimeRange{Start: start, End: end}, nil
}

// ScalingConfig decides how a zero renewable sum is handled.
type ScalingConfig struct {
	OnZeroSum string `json:"on_zero_sum"`
}

func (c *ScalingConfig) SetDefaults() {
	if c.OnZeroSum == "" {
		c.OnZeroSum = string(balance.ZeroSumNaN)
	}
}

func (c ScalingConfig) Validate() error {
	switch balance.ZeroSumPolicy(c.OnZeroSum) {
	case balance.ZeroSumNaN, balance.ZeroSumError:
		return nil
	}
	return fmt.Errorf("unknown on_zero_sum %q", c.OnZeroSum)
}

// Policy returns the configured policy.
func (c ScalingConfig) Policy() balance.ZeroSumPolicy {
	return balance.ZeroSumPolicy(c.OnZeroSum)
}

// PreviewConfig sizes the console preview.
type PreviewConfig struct {
	Rows int `json:"rows"`
}

func (c *PreviewConfig) SetDefaults() {
	if c.Rows == 0 {
		c.Rows = 5
	}
}

func (c PreviewConfig) Validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("rows must not be negative")
	}
	return nil
}
