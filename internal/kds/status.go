package kds

import "strings"

// Status tiers of a district performance score (0–5).
const (
	StatusExcellent = "Excellent"
	StatusGood      = "Good"
	StatusAverage   = "Average"
	StatusLow       = "Low"
)

// ScoreStatus classifies a performance score for the district table.
func ScoreStatus(score float64) string {
	switch {
	case score >= 4.7:
		return StatusExcellent
	case score >= 4.5:
		return StatusGood
	case score >= 4.0:
		return StatusAverage
	default:
		return StatusLow
	}
}

var trMonths = map[string]string{
	"Jan": "Oca", "Feb": "Şub", "Mar": "Mar", "Apr": "Nis", "May": "May", "Jun": "Haz",
	"Jul": "Tem", "Aug": "Ağu", "Sep": "Eyl", "Oct": "Eki", "Nov": "Kas", "Dec": "Ara",
}

// LocalizePeriod rewrites a "Jan 2025" style label for the given locale.
// Only "tr" is translated; anything unrecognised is returned unchanged.
func LocalizePeriod(period, locale string) string {
	if locale != "tr" {
		return period
	}
	parts := strings.Split(period, " ")
	if len(parts) != 2 {
		return period
	}
	month, ok := trMonths[parts[0]]
	if !ok {
		month = parts[0]
	}
	return month + " " + parts[1]
}

// LocalizeTrends returns a copy of points with localized period labels.
func LocalizeTrends(points []TrendPoint, locale string) []TrendPoint {
	out := make([]TrendPoint, len(points))
	for i, p := range points {
		p.Period = LocalizePeriod(p.Period, locale)
		out[i] = p
	}
	return out
}
