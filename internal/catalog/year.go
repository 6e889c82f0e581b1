package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var leadingDigits = regexp.MustCompile(`^\d+`)

const maxYearDigits = 4

// ExtractYear returns the year a year entry's name starts with, e.g. 2023 for
// "2023 Gasolina". Names that do not start with a year of at most four digits
// yield the current calendar year, which also covers FIPE's zero-km marker
// "32000".
func ExtractYear(name string) int {
	return extractYear(name, time.Now())
}

func extractYear(name string, now time.Time) int {
	if y, ok := leadingYear(name); ok {
		return y
	}
	return now.Year()
}

func leadingYear(name string) (int, bool) {
	digits := leadingDigits.FindString(strings.TrimSpace(name))
	if digits == "" || len(digits) > maxYearDigits {
		return 0, false
	}
	y, err := strconv.Atoi(digits)
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

// yearKey is the sort key used by YearsDesc. Names without a leading year
// sort after every real year.
func yearKey(name string) int {
	if y, ok := leadingYear(name); ok {
		return y
	}
	return -1
}
