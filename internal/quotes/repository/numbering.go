package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// firstSequence is where numbering starts for a new business or a new year.
const firstSequence = 1

// NextQuoteNumber derives the next number in the PREFIX-YYYY-NNN series.
// The sequence restarts at 001 when there is no previous number or when the
// previous number belongs to a different year. The sequence segment is
// zero-padded to three digits and widens beyond 999 without wrapping.
func NextQuoteNumber(prefix string, now time.Time, latest string) (string, error) {
	year := now.Year()
	if latest == "" {
		return FormatQuoteNumber(prefix, year, firstSequence), nil
	}

	latestYear, latestSeq, err := ParseQuoteNumber(latest)
	if err != nil {
		return "", fmt.Errorf("cannot derive next quote number from %q: %w", latest, err)
	}

	if latestYear != year {
		return FormatQuoteNumber(prefix, year, firstSequence), nil
	}
	return FormatQuoteNumber(prefix, year, latestSeq+1), nil
}

// FormatQuoteNumber renders PREFIX-YYYY-NNN with a three-digit minimum width.
func FormatQuoteNumber(prefix string, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, sequence)
}

// ParseQuoteNumber extracts the year and sequence from a quote number.
// The prefix may itself contain dashes, so segments are taken from the right.
func ParseQuoteNumber(number string) (year, sequence int, err error) {
	lastDash := strings.LastIndex(number, "-")
	if lastDash < 0 {
		return 0, 0, fmt.Errorf("malformed quote number %q", number)
	}
	prevDash := strings.LastIndex(number[:lastDash], "-")
	if prevDash < 0 {
		return 0, 0, fmt.Errorf("malformed quote number %q", number)
	}

	year, err = strconv.Atoi(number[prevDash+1 : lastDash])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed quote number %q: %w", number, err)
	}
	sequence, err = strconv.Atoi(number[lastDash+1:])
	if err != nil || sequence < 1 {
		return 0, 0, fmt.Errorf("malformed quote number %q", number)
	}
	return year, sequence, nil
}
