package alert

import (
	"fmt"
	"strconv"
	"strings"

	"weathertracker.app/internal/core/weather"
)

// Thresholds are compared against the raw stored values without unit conversion.
const (
	extremeHeatThreshold = 35.0
	extremeColdThreshold = -10.0
	highWindThreshold    = 50.0
	highUVThreshold      = 8.0
)

var (
	rainKeywords = []string{"rain", "heavy rain", "thunderstorm"}
	snowKeywords = []string{"snow", "heavy snow", "blizzard"}
)

// Evaluate maps a reading to the alert candidates it triggers. Every rule is checked
// independently, so one reading can yield several candidates. It has no side effects.
func Evaluate(r weather.Reading) []Candidate {
	var candidates []Candidate

	if r.Temperature > extremeHeatThreshold {
		candidates = append(candidates, Candidate{
			Severity:  SeverityHigh,
			Condition: ConditionExtremeHeat,
			Message:   fmt.Sprintf("Extreme heat warning: %s°%s", formatNumber(r.Temperature), r.TemperatureUnit.Symbol()),
		})
	}

	if r.Temperature < extremeColdThreshold {
		candidates = append(candidates, Candidate{
			Severity:  SeverityHigh,
			Condition: ConditionExtremeCold,
			Message:   fmt.Sprintf("Extreme cold warning: %s°%s", formatNumber(r.Temperature), r.TemperatureUnit.Symbol()),
		})
	}

	if r.WindSpeed > highWindThreshold {
		candidates = append(candidates, Candidate{
			Severity:  SeverityModerate,
			Condition: ConditionHighWind,
			Message:   fmt.Sprintf("High wind warning: %s %s", formatNumber(r.WindSpeed), r.WindSpeedUnit),
		})
	}

	description := strings.ToLower(r.Description)

	if containsAny(description, rainKeywords) {
		candidates = append(candidates, precipitationCandidate(r.Description, description))
	}

	if containsAny(description, snowKeywords) {
		candidates = append(candidates, Candidate{
			Severity:  SeverityModerate,
			Condition: ConditionSnow,
			Message:   "Snow alert: " + r.Description,
		})
	}

	if r.UVIndex != nil && *r.UVIndex > highUVThreshold {
		candidates = append(candidates, Candidate{
			Severity:  SeverityLow,
			Condition: ConditionUVWarning,
			Message:   fmt.Sprintf("High UV index warning: %s", formatNumber(*r.UVIndex)),
		})
	}

	return candidates
}

func precipitationCandidate(original, lowered string) Candidate {
	candidate := Candidate{
		Severity:  SeverityLow,
		Condition: ConditionRain,
		Message:   "Rain alert: " + original,
	}
	if strings.Contains(lowered, "heavy") {
		candidate.Severity = SeverityModerate
	}
	if strings.Contains(lowered, "thunder") {
		candidate.Condition = ConditionThunderstorm
		candidate.Message = "Thunderstorm alert: " + original
	}
	return candidate
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// formatNumber renders the shortest decimal that round-trips, e.g. 36 or 36.5
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
