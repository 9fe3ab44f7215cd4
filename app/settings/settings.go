package settings

import (
	"errors"
	"fmt"
	"math"

	"github.com/wieku/hitmeter/app/rulesets/hiterror"
	"github.com/wieku/hitmeter/app/rulesets/hitwindows"
)

var ErrInvalidSettings = errors.New("invalid settings")

type unstableRate struct {
	Show bool `json:"show"`

	// RatePolicy is one of "mania", "non-mania", "legacy-non-mania" or "never".
	RatePolicy string `json:"ratePolicy"`
}

type meter struct {
	ShowInCatch   bool    `json:"showInCatch"`
	ReplayCap     int     `json:"replayCap"`
	BiasSmoothing float64 `json:"biasSmoothing"`
}

type Settings struct {
	// Client is used when telemetry doesn't say which game it comes from: "stable" or "lazer".
	Client string `json:"client"`

	UnstableRate unstableRate `json:"unstableRate"`
	Meter        meter        `json:"meter"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Client: hitwindows.Legacy.String(),
		UnstableRate: unstableRate{
			Show:       true,
			RatePolicy: hiterror.RateMania.String(),
		},
		Meter: meter{
			ShowInCatch:   false,
			ReplayCap:     hiterror.DefaultReplayCap,
			BiasSmoothing: hiterror.DefaultBiasSmoothing,
		},
	}
}

func (s *Settings) Validate() error {
	if _, err := hitwindows.ParseClient(s.Client); err != nil {
		return fmt.Errorf("%w: client: %w", ErrInvalidSettings, err)
	}

	if _, err := hiterror.ParseRatePolicy(s.UnstableRate.RatePolicy); err != nil {
		return fmt.Errorf("%w: unstableRate.ratePolicy: %w", ErrInvalidSettings, err)
	}

	if s.Meter.ReplayCap < 0 {
		return fmt.Errorf("%w: meter.replayCap must not be negative, got %d", ErrInvalidSettings, s.Meter.ReplayCap)
	}

	if !(s.Meter.BiasSmoothing > 0 && s.Meter.BiasSmoothing <= 1) || math.IsNaN(s.Meter.BiasSmoothing) {
		return fmt.Errorf("%w: meter.biasSmoothing must be in (0, 1], got %v", ErrInvalidSettings, s.Meter.BiasSmoothing)
	}

	return nil
}

// ToMeterConfig converts validated settings into the meter's configuration.
func (s *Settings) ToMeterConfig() (hiterror.Config, error) {
	if err := s.Validate(); err != nil {
		return hiterror.Config{}, err
	}

	client, _ := hitwindows.ParseClient(s.Client)
	policy, _ := hiterror.ParseRatePolicy(s.UnstableRate.RatePolicy)

	return hiterror.Config{
		Client:           client,
		RatePolicy:       policy,
		ReplayCap:        s.Meter.ReplayCap,
		BiasSmoothing:    s.Meter.BiasSmoothing,
		ShowInCatch:      s.Meter.ShowInCatch,
		ShowUnstableRate: s.UnstableRate.Show,
	}, nil
}
