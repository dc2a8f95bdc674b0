package format

import (
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFixedRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.1", Fixed(0.05, 1))
	assert.Equal(t, "12.35", Fixed(12.345, 2))
	assert.Equal(t, "-1.5", Fixed(-1.45, 1))
	assert.Equal(t, "0.0", Fixed(0, 1))
}

func TestCroreAndThousands(t *testing.T) {
	assert.Equal(t, "₹12.3 Cr", Crore(123_456_789, 1))
	assert.Equal(t, "₹0.00 Cr", Crore(0, 2))
	assert.Equal(t, "4.5 K", Thousands(4_499.9))
}

func TestPercentAndGrowth(t *testing.T) {
	assert.Equal(t, "16.7%", Percent(16.6666))
	assert.Equal(t, "+4.2%", Growth(4.16))
	assert.Equal(t, "-3.0%", Growth(-3))
	assert.Equal(t, "0.0%", Growth(0.01))
}

func TestArrow(t *testing.T) {
	assert.Equal(t, "▲", Arrow(10, 10))
	assert.Equal(t, "▼", Arrow(9, 10))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "950", Number(949.6))
	assert.Equal(t, "12,345", Number(12_345))
}

func TestDateRange(t *testing.T) {
	from := domain.NewDate(2025, 3, 1)
	to := domain.NewDate(2025, 3, 14)
	assert.Equal(t, "1 Mar - 14 Mar 2025", DateRange(from, to))
	assert.Empty(t, DateRange(domain.Date{}, to))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan 2025", MonthLabel("2025-01"))
	assert.Equal(t, "Dec 2024", MonthLabel("2024-12"))
	assert.Equal(t, "bogus", MonthLabel("bogus"))
}
