// Package export renders quotes for people: a plain-text block for pasting
// into messages and an XLSX workbook. Neither format is read back.
package export

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/quotekit/backend/internal/pricing"
)

// Summary is everything shown for one quote.
type Summary struct {
	Name       string
	Date       string
	LaborHours float64
	LaborCost  float64
	LaborPrice float64
	Lines      []pricing.Line
	TotalCost  float64
	TotalPrice float64
	Profit     float64
	Margin     float64
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Money formats v as a dollar amount with two decimals, e.g. "$1,234.50".
func Money(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	d := round2(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// Number formats v with two decimals.
func Number(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	return round2(v).StringFixed(2)
}

// Percent formats v as a percentage with two decimals.
func Percent(v float64) string {
	return Number(v) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatText renders s as a plain-text block.
func FormatText(s Summary) string {
	var b strings.Builder

	title := s.Name
	if title == "" {
		title = "Untitled quote"
	}
	fmt.Fprintf(&b, "QUOTE: %s\n", title)
	if s.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", s.Date)
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "LABOR")
	fmt.Fprintf(tw, "  Hours:\t%s\n", Number(s.LaborHours))
	fmt.Fprintf(tw, "  Labor cost:\t%s\n", Money(s.LaborCost))
	fmt.Fprintf(tw, "  Labor price:\t%s\n", Money(s.LaborPrice))
	tw.Flush()

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "MATERIALS")
	if len(s.Lines) == 0 {
		fmt.Fprintln(&b, "  (none)")
	} else {
		tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, l := range s.Lines {
			fmt.Fprintf(tw, "  %s\tx %s\t@ %s\t+%s\t= %s\n",
				l.Name, Number(l.Quantity), Money(l.UnitCost), Percent(l.Markup), Money(l.Price))
		}
		tw.Flush()
	}

	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOTALS")
	fmt.Fprintf(tw, "  Total cost:\t%s\n", Money(s.TotalCost))
	fmt.Fprintf(tw, "  Total price:\t%s\n", Money(s.TotalPrice))
	fmt.Fprintf(tw, "  Net profit:\t%s\n", Money(s.Profit))
	fmt.Fprintf(tw, "  Margin:\t%s\n", Percent(s.Margin))
	tw.Flush()

	return b.String()
}
