// Package format renders dashboard figures for display. Values are rounded
// here and nowhere else.
package format

import (
	"fmt"
	"math"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	crore    = 1e7
	thousand = 1e3
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Fixed rounds v half away from zero and prints exactly places decimals.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Crore prints a rupee amount in crores, e.g. "₹12.3 Cr".
func Crore(v float64, places int32) string {
	return "₹" + Fixed(v/crore, places) + " Cr"
}

// Thousands prints a count in thousands, e.g. "4.5 K".
func Thousands(v float64) string {
	return Fixed(v/thousand, 1) + " K"
}

// Percent prints v with one decimal and a percent sign.
func Percent(v float64) string {
	return Fixed(v, 1) + "%"
}

// Growth prints a signed percentage, e.g. "+4.2%".
func Growth(v float64) string {
	s := Percent(v)
	if decimal.NewFromFloat(v).Round(1).IsPositive() {
		return "+" + s
	}
	return s
}

// Arrow is ▲ when current is at least lastYear, ▼ otherwise.
func Arrow(current, lastYear float64) string {
	if current >= lastYear {
		return "▲"
	}
	return "▼"
}

// Number prints v rounded to an integer with Indian digit grouping.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart())
}

// Rupees prints an amount with two decimals and Indian digit grouping.
func Rupees(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return "₹" + printer.Sprintf("%.2f", f)
}

// DateRange prints a range like "1 Mar - 14 Mar 2025".
func DateRange(from, to domain.Date) string {
	if from.IsZero() || to.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s - %d %s %d",
		from.Day(), from.Month().String()[:3],
		to.Day(), to.Month().String()[:3], to.Year())
}

// MonthLabel turns "2025-01" into "Jan 2025". Unparseable input is returned
// unchanged.
func MonthLabel(ym string) string {
	d, err := domain.ParseDate(ym + "-01")
	if err != nil {
		return ym
	}
	return fmt.Sprintf("%s %d", d.Month().String()[:3], d.Year())
}
