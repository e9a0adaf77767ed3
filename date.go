package stockbook

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// TimestampFormat is the canonical on-disk format for movement timestamps.
const TimestampFormat = "2006-01-02T15:04:05"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// DateOf returns the Date of the given instant in its location.
func DateOf(t time.Time) Date { return NewDate(t.Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date as ISO-8601 (YYYY-MM-DD).
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according
// to the layout defined by the argument. See the documentation for [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// MonthOf returns the calendar month containing the date.
func (d Date) MonthOf() Month { return Month{y: d.y, m: d.m} }

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwm])$`)

// ParseDate parses a Date from a string. It is lenient: it accepts formats
// like "2025-7-1", a full timestamp (the time part is dropped), and relative
// offsets from today such as "-3d", "+1w", "-1m" ("0d" is today).
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	// Handle "0d" as a special case for today
	if str == "0d" {
		return Today(), nil
	}

	// Relative offset (e.g., -1d, +2w) - sign is mandatory for non-zero
	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}

		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return NewDate(today.Year(), today.Month()+time.Month(num), today.Day()), nil
		}
	}

	// Standard ISO format (fallback)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// A full timestamp is also acceptable as a day.
		if t, terr := ParseTimestamp(str); terr == nil {
			return DateOf(t), nil
		}
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshal a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	// Keep this parsing strict, as it's for data files.
	// But not too strict, also supports 2025-7-1
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*d = NewDate(on.Date())
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshal/unmarshal type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Month represents a calendar month, the unit of opening-stock periods.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{y: t.Year(), m: t.Month()}
}

// ThisMonth returns the current calendar month.
func ThisMonth() Month { return Today().MonthOf() }

// String formats the month as its period key "YYYY-MM".
func (p Month) String() string {
	return time.Date(p.y, p.m, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// IsZero returns true if the month is the zero value.
func (p Month) IsZero() bool { return p.y == 0 && p.m == 0 }

// Before reports whether p is strictly earlier than x.
// Period keys compare lexicographically the same way.
func (p Month) Before(x Month) bool {
	return p.y < x.y || (p.y == x.y && p.m < x.m)
}

// After reports whether p is strictly later than x.
func (p Month) After(x Month) bool { return x.Before(p) }

// Add returns the month i months after p (or before, for negative i).
func (p Month) Add(i int) Month { return NewMonth(p.y, p.m+time.Month(i)) }

// First returns the first day of the month.
func (p Month) First() Date { return NewDate(p.y, p.m, 1) }

// Last returns the last day of the month.
func (p Month) Last() Date { return NewDate(p.y, p.m+1, 0) }

// Contains reports whether the given date falls inside the month.
func (p Month) Contains(d Date) bool { return p.y == d.y && p.m == d.m }

var relativeMonthRE = regexp.MustCompile(`^([+-])(\d+)m$`)

// ParseMonth parses a period key "YYYY-MM". It is lenient: "2025-7" is
// accepted, as are relative offsets from the current month ("-1m", "0m").
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)

	if str == "0m" {
		return ThisMonth(), nil
	}
	if match := relativeMonthRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return Month{}, fmt.Errorf("invalid number in relative month %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		return ThisMonth().Add(num), nil
	}

	on, err := time.Parse("2006-1", str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, "2006-01", err)
	}
	return NewMonth(on.Year(), on.Month()), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	p, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return p
}

func (p Month) MarshalJSON() ([]byte, error) {
	str := p.String()
	return json.Marshal(&str)
}

func (p *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := time.Parse("2006-1", str)
	if err != nil {
		return fmt.Errorf("invalid month %q in data file, want format %q: %w", str, "2006-01", err)
	}
	*p = NewMonth(on.Year(), on.Month())
	return nil
}

// ParseTimestamp parses a movement timestamp. The canonical form is
// "2006-01-02T15:04:05" but a space separator, a fractional-second suffix,
// a trailing "Z" and a bare day are all accepted, because documents written
// by older versions carry all of them.
func ParseTimestamp(str string) (time.Time, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "Z")
	for _, layout := range []string{
		TimestampFormat,
		"2006-01-02T15:04:05.999999",
		"2006-01-02 15:04:05",
		DateFormat,
	} {
		if t, err := time.Parse(layout, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q want format %q", str, TimestampFormat)
}

// DisplayTimestamp renders a stored timestamp for reports and sheet rows:
// "2006-01-02 15:04:05". A bare day becomes "<day> 00:00:00" and an
// unparseable value is returned as-is.
func DisplayTimestamp(raw string) string {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	if raw == "" {
		return ""
	}
	if t, err := ParseTimestamp(raw); err == nil {
		return t.Format("2006-01-02 15:04:05")
	}
	return raw
}
