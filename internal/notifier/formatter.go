package notifier

import (
	"fmt"
	"strings"

	"WeeklyHigh/internal/model"
)

// FormatWeeklyPrices lists every record with its week number, oldest first.
func FormatWeeklyPrices(records []model.Record) string {
	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "Stock price on %s Week %d: $%.2f\n", r.Day(), i+1, r.Price)
	}
	return b.String()
}

// FormatHigh renders a single maximum.
func FormatHigh(r model.Record) string {
	return fmt.Sprintf("The highest price of the stock within 52 weeks: $%.2f on %s", r.Price, r.Day())
}

// FormatReport renders the full console report.
func FormatReport(rep *model.HighReport) string {
	var b strings.Builder
	b.WriteString(FormatWeeklyPrices(rep.Records))
	b.WriteString(FormatHigh(rep.IterativeHigh))
	b.WriteString("\n")
	b.WriteString(FormatHigh(rep.RecursiveHigh))
	b.WriteString("\n\n")
	b.WriteString(FormatSummary(rep))
	return b.String()
}

// FormatSummary renders the indicator block appended to the report.
func FormatSummary(rep *model.HighReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Window: %s .. %s (%d weeks)\n",
		rep.FirstDate().Format(model.DateLayout), rep.LastDate().Format(model.DateLayout), len(rep.Records))
	fmt.Fprintf(&b, "Latest: $%.2f\n", rep.LatestPrice)
	fmt.Fprintf(&b, "52w range: $%.2f - $%.2f (position %.0f%%)\n", rep.Low52w, rep.High52w, rep.Position52w*100)
	fmt.Fprintf(&b, "4w range: $%.2f - $%.2f\n", rep.Low4w, rep.High4w)
	fmt.Fprintf(&b, "MA20w: $%.2f | MA50w: $%.2f\n", rep.MA20w, rep.MA50w)
	fmt.Fprintf(&b, "Weekly RSI(14): %.1f\n", rep.WeeklyRSI)
	return b.String()
}

// FormatDigest is the short form sent to chat notifiers.
func FormatDigest(rep *model.HighReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "52-week high: $%.2f on %s\n", rep.IterativeHigh.Price, rep.IterativeHigh.Day())
	b.WriteString(FormatSummary(rep))
	return b.String()
}
