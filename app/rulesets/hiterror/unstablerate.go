package hiterror

import (
	"fmt"
	"strings"

	"github.com/wieku/hitmeter/app/rulesets/hitwindows"
)

// RatePolicy decides when the Unstable Rate is divided by the playback rate.
// Overlay variants disagree on this, so it's left configurable.
type RatePolicy int

const (
	// RateMania divides for osu!mania and mania converts. This is what the overlay ships with.
	RateMania RatePolicy = iota
	// RateNonMania divides for every ruleset except the mania family.
	RateNonMania
	// RateLegacyNonMania divides for non-mania rulesets played on osu!stable only.
	RateLegacyNonMania
	// RateNever never divides.
	RateNever
)

var ratePolicyNames = map[RatePolicy]string{
	RateMania:          "mania",
	RateNonMania:       "non-mania",
	RateLegacyNonMania: "legacy-non-mania",
	RateNever:          "never",
}

func (policy RatePolicy) String() string {
	if name, ok := ratePolicyNames[policy]; ok {
		return name
	}

	return fmt.Sprintf("RatePolicy(%d)", int(policy))
}

func ParseRatePolicy(name string) (RatePolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for policy, n := range ratePolicyNames {
		if n == name {
			return policy, nil
		}
	}

	return 0, fmt.Errorf("unknown rate policy %q", name)
}

func (policy RatePolicy) MarshalText() ([]byte, error) {
	if _, ok := ratePolicyNames[policy]; !ok {
		return nil, fmt.Errorf("unknown rate policy %d", int(policy))
	}

	return []byte(policy.String()), nil
}

func (policy *RatePolicy) UnmarshalText(text []byte) error {
	p, err := ParseRatePolicy(string(text))
	if err != nil {
		return err
	}

	*policy = p

	return nil
}

// Divides reports whether the Unstable Rate should be corrected by the rate for the ruleset and client.
func (policy RatePolicy) Divides(ruleset hitwindows.Ruleset, client hitwindows.Client) bool {
	switch policy {
	case RateMania:
		return ruleset.IsMania()
	case RateNonMania:
		return !ruleset.IsMania()
	case RateLegacyNonMania:
		return client == hitwindows.Legacy && !ruleset.IsMania()
	}

	return false
}

// UnstableRate is 10 times the standard deviation of hit errors, optionally made rate-invariant.
func UnstableRate(hitErrors []float64, ruleset hitwindows.Ruleset, client hitwindows.Client, rate float64, policy RatePolicy) float64 {
	ur := StandardDeviation(hitErrors) * 10

	if rate > 0 && policy.Divides(ruleset, client) {
		ur /= rate
	}

	return ur
}
