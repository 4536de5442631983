package report

import (
	"fmt"
	"math"

	"staffplan/internal/workforce"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ExecutiveSummary is the decision-support wording of a verdict.
type ExecutiveSummary struct {
	IsHiring    bool   `json:"is_hiring"`
	Headline    string `json:"headline"`
	BudgetLabel string `json:"budget_label"`
	Amount      string `json:"amount"`
}

// Summarize phrases a verdict as a hiring need or a reduction/surplus.
func Summarize(v workforce.AggregateVerdict) ExecutiveSummary {
	if v.IsHiring {
		return ExecutiveSummary{
			IsHiring:    true,
			Headline:    fmt.Sprintf("Operational sustainability calls for hiring %d new staff.", v.Magnitude),
			BudgetLabel: "Estimated monthly additional budget",
			Amount:      FormatLira(v.EstimatedMonthlyCost),
		}
	}
	return ExecutiveSummary{
		IsHiring:    false,
		Headline:    fmt.Sprintf("Operational sustainability indicates a surplus of %d staff to reduce.", v.Magnitude),
		BudgetLabel: "Estimated monthly staff savings",
		Amount:      FormatLira(v.EstimatedMonthlyCost),
	}
}

var liraPrinter = message.NewPrinter(language.Turkish)

// FormatLira renders a whole-lira amount with Turkish digit grouping, e.g. ₺280.000.
func FormatLira(amount float64) string {
	lira := int64(math.Round(math.Abs(amount)))
	if amount < 0 {
		return liraPrinter.Sprintf("-₺%d", lira)
	}
	return liraPrinter.Sprintf("₺%d", lira)
}
