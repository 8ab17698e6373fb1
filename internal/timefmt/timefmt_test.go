package timefmt

import (
	"testing"
	"time"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateSerialRange(t *testing.T) {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= 100000; n++ {
		want := base.AddDate(0, 0, n).Format(DateLayout)
		if got := NormalizeDate(record.Num(float64(n))); got != want {
			t.Fatalf("serial %d: got %s want %s", n, got, want)
		}
	}
}

func TestNormalizeDateKnownSerials(t *testing.T) {
	assert.Equal(t, "2024-01-01", NormalizeDate(record.Num(45292)))
	assert.Equal(t, "1970-01-01", NormalizeDate(record.Num(25569)))
	assert.Equal(t, "2024-01-01", NormalizeDate(record.Num(45292.75)))
}

func TestNormalizeDateText(t *testing.T) {
	cases := map[string]string{
		"2024-03-05":           "2024-03-05",
		"03/05/2024":           "2024-03-05",
		"3/5/2024":             "2024-03-05",
		"2024/03/05":           "2024-03-05",
		"2024-03-05T10:00:00Z": "2024-03-05",
		"Mar 5, 2024":          "2024-03-05",
		"  not a date ":        "not a date",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDate(record.Str(in)), in)
	}
	assert.Equal(t, "", NormalizeDate(record.Null()))
	assert.Equal(t, "", NormalizeDate(record.Str("")))
}

func TestNormalizeTimeFraction(t *testing.T) {
	assert.Equal(t, "12:00:00", NormalizeTime(record.Num(0.5)))
	assert.Equal(t, "18:00:00", NormalizeTime(record.Num(0.75)))
	assert.Equal(t, "00:00:00", NormalizeTime(record.Num(0)))
	assert.Equal(t, "06:00:00", NormalizeTime(record.Num(1.25)))
	assert.Equal(t, "08:30:15", NormalizeTime(record.Num((8*3600+30*60+15)/86400.0)))
}

func TestNormalizeTimeMeridiem(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12:05:30 AM", "00:05:30"}, {"12:05:30 PM", "12:05:30"},
		{"1:05:30 AM", "01:05:30"}, {"1:05:30 PM", "13:05:30"},
		{"2:05:30 AM", "02:05:30"}, {"2:05:30 PM", "14:05:30"},
		{"3:05:30 AM", "03:05:30"}, {"3:05:30 PM", "15:05:30"},
		{"4:05:30 AM", "04:05:30"}, {"4:05:30 PM", "16:05:30"},
		{"5:05:30 AM", "05:05:30"}, {"5:05:30 PM", "17:05:30"},
		{"6:05:30 AM", "06:05:30"}, {"6:05:30 PM", "18:05:30"},
		{"7:05:30 AM", "07:05:30"}, {"7:05:30 PM", "19:05:30"},
		{"8:05:30 AM", "08:05:30"}, {"8:05:30 PM", "20:05:30"},
		{"9:05:30 AM", "09:05:30"}, {"9:05:30 PM", "21:05:30"},
		{"10:05:30 AM", "10:05:30"}, {"10:05:30 PM", "22:05:30"},
		{"11:05:30 AM", "11:05:30"}, {"11:05:30 PM", "23:05:30"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeTime(record.Str(c.in)), c.in)
	}
	for h := 1; h <= 12; h++ {
		am := h % 12
		pm := am + 12
		assert.Equal(t, pad2(int64(am))+":15:00", NormalizeTime(record.Str(itoa(h)+":15 AM")), "%d AM", h)
		assert.Equal(t, pad2(int64(pm))+":15:00", NormalizeTime(record.Str(itoa(h)+":15 PM")), "%d PM", h)
	}
	assert.Equal(t, "00:05:09", NormalizeTime(record.Str("12:05:09 am")))
	assert.Equal(t, "19:00:00", NormalizeTime(record.Str("7pm")))
}

func TestNormalizeTimePassThrough(t *testing.T) {
	assert.Equal(t, "14:30:00", NormalizeTime(record.Str("14:30")))
	assert.Equal(t, "14:30:59", NormalizeTime(record.Str("14:30:59")))
	assert.Equal(t, "soon", NormalizeTime(record.Str(" soon ")))
	for _, bad := range []string{"13:30 PM", "2:75 PM", "23:10:00 AM", "0:30 AM", "11:30:61 PM"} {
		assert.Equal(t, bad, NormalizeTime(record.Str(bad)), bad)
	}
	assert.Equal(t, 0.0, ClockHours("13:30 PM"))
	assert.Equal(t, "", NormalizeTime(record.Null()))
}

func TestClockHours(t *testing.T) {
	assert.InDelta(t, 13.5, ClockHours("1:30 PM"), 1e-9)
	assert.InDelta(t, 9.25, ClockHours("09:15:00"), 1e-9)
	assert.Equal(t, 0.0, ClockHours("n/a"))
}

func TestCombineAndMinutesBetween(t *testing.T) {
	start, ok := Combine("2024-01-01", "10:00")
	require.True(t, ok)
	end, ok := Combine("2024-01-01", "10:45:30")
	require.True(t, ok)
	assert.InDelta(t, 45.5, MinutesBetween(start, end), 1e-9)
	assert.InDelta(t, -45.5, MinutesBetween(end, start), 1e-9)

	_, ok = Combine("", "10:00")
	assert.False(t, ok)
	_, ok = Combine("2024-01-01", "late")
	assert.False(t, ok)

	assert.Equal(t, 0.0, MinutesBetween(time.Time{}, end))
	assert.Equal(t, 0.0, MinutesBetween(start, time.Time{}))
}

func itoa(n int) string { return pad2(int64(n)) }
