package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	earliestYear  = 2000
	maxDaysBehind = 3650
)

var (
	dateRegex    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	daysAgoRegex = regexp.MustCompile(`^(\d+)\s*(d|day|days)(\s+ago)?$`)
)

// ParseDate parses the date of a fill-up relative to now.
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2024")
// - today, yesterday
// - N days ago (e.g., "3 days ago", "3days", "3d")
//
// Dates in the future are rejected. The time of day is taken from now so
// that entries logged on the same day keep their order.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	switch input {
	case "today", "now":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	if matches := daysAgoRegex.FindStringSubmatch(input); matches != nil {
		days, err := strconv.Atoi(matches[1])
		if err != nil || days > maxDaysBehind {
			return time.Time{}, fmt.Errorf("days must be between 0 and %d", maxDaysBehind)
		}
		return now.AddDate(0, 0, -days), nil
	}

	date, err := parseDateFormat(input, now)
	if err != nil {
		return time.Time{}, err
	}
	if date.After(now) {
		return time.Time{}, fmt.Errorf("date %s is in the future", input)
	}
	return date, nil
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string, now time.Time) (time.Time, error) {
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, today, yesterday or N days ago")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	// Validate date ranges
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if year < earliestYear || year > now.Year() {
		return time.Time{}, fmt.Errorf("year must be between %d and %d", earliestYear, now.Year())
	}

	date := time.Date(year, time.Month(month), day, now.Hour(), now.Minute(), now.Second(), 0, now.Location())

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// FormatDate formats a fill-up date for display
func FormatDate(date, now time.Time) string {
	// Calculate calendar days difference
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	local := date.In(now.Location())
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(today.Sub(day).Hours() / 24)

	dateStr := local.Format("02/01/2006")

	switch {
	case daysDiff == 0:
		return "Today"
	case daysDiff == 1:
		return "Yesterday"
	case daysDiff > 1 && daysDiff <= 7:
		return fmt.Sprintf("%s (%d days ago)", dateStr, daysDiff)
	default:
		return dateStr
	}
}
