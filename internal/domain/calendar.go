package domain

import "time"

// Year picker bounds and page size
const (
	StartYear    = 1950
	YearsPerPage = 20
)

// EndYear returns the inclusive upper bound of the selectable year range.
func EndYear(now time.Time) int {
	return now.Year() + 1
}

// MaxYearPage returns the index of the last year page (zero-based).
// The range is inclusive of endYear, so an endYear landing exactly on a
// page boundary opens one more page.
func MaxYearPage(endYear int) int {
	return (endYear - StartYear) / YearsPerPage
}

// ClampYearPage bounds a page index to [0, MaxYearPage]; no wraparound.
func ClampYearPage(page, endYear int) int {
	max := MaxYearPage(endYear)
	if page < 0 {
		return 0
	}
	if page > max {
		return max
	}
	return page
}

// YearsOnPage lists the years shown on the given page, oldest first.
func YearsOnPage(page, endYear int) []int {
	page = ClampYearPage(page, endYear)
	start := StartYear + page*YearsPerPage
	var years []int
	for y := start; y < start+YearsPerPage && y <= endYear; y++ {
		years = append(years, y)
	}
	return years
}

// PageForYear returns the page a year appears on, so the picker can reopen
// where the user left off.
func PageForYear(year, endYear int) int {
	if year < StartYear {
		return 0
	}
	return ClampYearPage((year-StartYear)/YearsPerPage, endYear)
}

// DaysInMonth returns the number of days in the given month of the year.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
