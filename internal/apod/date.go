package apod

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const dateLayout = "2006-01-02"

// The provider's archive starts on 1995-06-16.
const (
	FirstYear  = 1995
	firstMonth = time.June
	firstDay   = 16
)

// FirstDate is the earliest date the provider has a record for.
var FirstDate = time.Date(FirstYear, firstMonth, firstDay, 0, 0, 0, 0, time.UTC)

// RandomDate returns today's month and day in a random archive year.
func RandomDate() string {
	return SampleDate(time.Now(), nil)
}

// SampleDate picks a year uniformly from [FirstYear, now.Year()] and pairs it
// with now's month and day. When that lands before the archive start, the year
// is drawn once more from the years after FirstYear. A nil rng uses the global
// source.
func SampleDate(now time.Time, rng *rand.Rand) string {
	month, day := now.Month(), now.Day()
	year := FirstYear + intN(rng, now.Year()-FirstYear+1)

	if year == FirstYear && beforeArchive(month, day) {
		span := now.Year() - FirstYear
		if span <= 0 {
			return FirstDate.Format(dateLayout)
		}
		year = FirstYear + 1 + intN(rng, span)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate validates a YYYY-MM-DD string against the archive range.
func ParseDate(value string) (string, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", value, err)
	}
	if t.Before(FirstDate) {
		return "", fmt.Errorf("date %s is before the archive start %s", value, FirstDate.Format(dateLayout))
	}
	return t.Format(dateLayout), nil
}

func beforeArchive(month time.Month, day int) bool {
	return month < firstMonth || (month == firstMonth && day < firstDay)
}

func intN(rng *rand.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
