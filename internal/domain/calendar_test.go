package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampYearPage(t *testing.T) {
	endYear := 2026
	maxPage := MaxYearPage(endYear)

	tests := []struct {
		name     string
		page     int
		expected int
	}{
		{name: "previous at first page stays", page: -1, expected: 0},
		{name: "first page", page: 0, expected: 0},
		{name: "middle page", page: 1, expected: 1},
		{name: "last page", page: maxPage, expected: maxPage},
		{name: "next at last page stays", page: maxPage + 1, expected: maxPage},
		{name: "far beyond", page: 100, expected: maxPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampYearPage(tt.page, endYear))
		})
	}
}

// Every year in [StartYear, endYear] must appear on exactly one page.
// Ranges whose length is an exact multiple of the page size put the last
// year alone on an extra page, so those boundaries get their own cases.
func TestYearsOnPage_CoversRangeExactlyOnce(t *testing.T) {
	assert.Equal(t, 2026, EndYear(time.Date(2025, time.August, 28, 0, 0, 0, 0, time.UTC)))

	tests := []struct {
		name    string
		endYear int
	}{
		{name: "mid page", endYear: 2026},
		{name: "first page-size boundary", endYear: 1970},
		{name: "page-size boundary", endYear: 2030},
		{name: "last year of full page", endYear: 2029},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[int]int)
			for page := 0; page <= MaxYearPage(tt.endYear); page++ {
				for _, y := range YearsOnPage(page, tt.endYear) {
					seen[y]++
					assert.Equal(t, page, PageForYear(y, tt.endYear), "year %d must map back to its page", y)
				}
			}

			for y := StartYear; y <= tt.endYear; y++ {
				assert.Equal(t, 1, seen[y], "year %d", y)
			}
			assert.Len(t, seen, tt.endYear-StartYear+1)
		})
	}
}

func TestPageForYear_BeforeRange(t *testing.T) {
	assert.Equal(t, 0, PageForYear(1900, 2026))
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		expected int
	}{
		{name: "january", year: 2024, month: 1, expected: 31},
		{name: "february leap", year: 2024, month: 2, expected: 29},
		{name: "february non-leap", year: 2023, month: 2, expected: 28},
		{name: "april", year: 2024, month: 4, expected: 30},
		{name: "december", year: 2024, month: 12, expected: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}
