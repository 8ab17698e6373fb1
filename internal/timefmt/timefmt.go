// Package timefmt normalizes the date and time encodings found in exported
// spreadsheets: serial day numbers, day fractions, 12-hour clock strings and
// the usual textual layouts.
package timefmt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

const (
	// serialEpochOffset is the number of days between the spreadsheet epoch
	// (1899-12-30) and the Unix epoch.
	serialEpochOffset = 25569
	secondsPerDay     = 86400

	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

var dateLayouts = []string{
	time.RFC3339,
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

var clockLayouts = []string{
	ClockLayout,
	"15:04",
	"15:04:05.000",
}

var meridiemRe = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2}))?\s*([ap])\.?\s*m\.?\s*$`)

// SerialToTime converts a spreadsheet serial day count to a UTC instant,
// rounded to the millisecond.
func SerialToTime(serial float64) time.Time {
	ms := math.Round((serial - serialEpochOffset) * secondsPerDay * 1000)
	return time.UnixMilli(int64(ms)).UTC()
}

// NormalizeDate renders a date cell as YYYY-MM-DD. Numbers are serial day
// counts. Text that matches no known layout is returned trimmed.
func NormalizeDate(v record.Value) string {
	switch v.Kind {
	case record.Number:
		return SerialToTime(v.N).Format(DateLayout)
	case record.Absent:
		return ""
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return ""
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}

// NormalizeTime renders a time cell as HH:MM:SS on a 24-hour clock. Numbers
// are fractions of a day and the hour wraps at 24. Text that cannot be read
// as a clock value is returned trimmed.
func NormalizeTime(v record.Value) string {
	switch v.Kind {
	case record.Number:
		secs := int64(math.Round(v.N * secondsPerDay))
		h := (secs / 3600) % 24
		if h < 0 {
			h += 24
		}
		m := (secs % 3600) / 60
		s := secs % 60
		if m < 0 {
			m = -m
		}
		if s < 0 {
			s = -s
		}
		return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
	case record.Absent:
		return ""
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return ""
	}
	if h, m, sec, ok := parseClock(s); ok {
		return pad2(int64(h)) + ":" + pad2(int64(m)) + ":" + pad2(int64(sec))
	}
	return s
}

// ClockHours returns hours plus fractional minutes for a 12 or 24-hour clock
// string, or 0 when the string is not a clock value.
func ClockHours(s string) float64 {
	h, m, _, ok := parseClock(strings.TrimSpace(s))
	if !ok {
		return 0
	}
	return float64(h) + float64(m)/60
}

// Combine joins a YYYY-MM-DD date and an HH:MM[:SS] clock into a UTC instant.
func Combine(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	if strings.Count(clock, ":") == 1 {
		clock += ":00"
	}
	t, err := time.Parse(DateLayout+"T"+ClockLayout, date+"T"+clock)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MinutesBetween is the signed difference end-start in minutes, or 0 when
// either instant is unset.
func MinutesBetween(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return end.Sub(start).Minutes()
}

func parseClock(s string) (h, m, sec int, ok bool) {
	for _, l := range clockLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Hour(), t.Minute(), t.Second(), true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Hour(), t.Minute(), t.Second(), true
	}
	mm := meridiemRe.FindStringSubmatch(s)
	if mm == nil {
		return 0, 0, 0, false
	}
	h, _ = strconv.Atoi(mm[1])
	if mm[2] != "" {
		m, _ = strconv.Atoi(mm[2])
	}
	if mm[3] != "" {
		sec, _ = strconv.Atoi(mm[3])
	}
	if h < 1 || h > 12 || m > 59 || sec > 59 {
		return 0, 0, 0, false
	}
	pm := strings.EqualFold(mm[4], "p")
	switch {
	case pm && h != 12:
		h += 12
	case !pm && h == 12:
		h = 0
	}
	return h, m, sec, true
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
