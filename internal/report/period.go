package report

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"backoffice/backend/internal/domain"
)

var ErrInvalidPeriod = errors.New("invalid report period")

type Kind string

const (
	Daily   Kind = domain.ReportTypeDaily
	Weekly  Kind = domain.ReportTypeWeekly
	Monthly Kind = domain.ReportTypeMonthly
	Yearly  Kind = domain.ReportTypeYearly
)

const dateLayout = "2006-01-02"

var (
	isoWeekPattern  = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
	yearMonthRegexp = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case Daily, Weekly, Monthly, Yearly:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown report type %q", ErrInvalidPeriod, raw)
	}
}

// Period is a report bucket: a kind plus a normalized anchor date at UTC
// midnight.
type Period struct {
	Kind   Kind
	Anchor time.Time
}

// ParsePeriod normalizes the caller's anchor into a calendar date. now is
// used for an empty anchor and for a weekly report anchored on a bare year,
// which always resolves to the current week.
func ParsePeriod(kind string, anchor string, now time.Time) (Period, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Period{}, err
	}
	anchor = strings.TrimSpace(anchor)
	today := civilDate(now)

	if anchor == "" {
		return Period{Kind: k, Anchor: today}, nil
	}
	if day, err := time.Parse(dateLayout, anchor); err == nil {
		return Period{Kind: k, Anchor: day}, nil
	}

	switch k {
	case Weekly:
		if yearPattern.MatchString(anchor) {
			return Period{Kind: k, Anchor: today}, nil
		}
		if m := isoWeekPattern.FindStringSubmatch(anchor); m != nil {
			year, _ := strconv.Atoi(m[1])
			week, _ := strconv.Atoi(m[2])
			if week < 1 || week > 53 {
				return Period{}, fmt.Errorf("%w: week %d out of range", ErrInvalidPeriod, week)
			}
			return Period{Kind: k, Anchor: isoWeekStart(year, week)}, nil
		}
	case Monthly:
		if yearMonthRegexp.MatchString(anchor) {
			if day, err := time.Parse("2006-01", anchor); err == nil {
				return Period{Kind: k, Anchor: day}, nil
			}
		}
	case Yearly:
		if yearPattern.MatchString(anchor) {
			year, _ := strconv.Atoi(anchor)
			return Period{Kind: k, Anchor: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)}, nil
		}
	}
	return Period{}, fmt.Errorf("%w: anchor %q is not valid for a %s report", ErrInvalidPeriod, anchor, k)
}

// isoWeekStart maps a YYYY-Wnn token to the first day of that week the way
// the week picker on the front office computes it.
func isoWeekStart(year int, week int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	dayOffset := int(jan1.Weekday())
	day := jan1.AddDate(0, 0, (week-1)*7)
	if dayOffset > 0 {
		day = day.AddDate(0, 0, -(dayOffset - 1))
	}
	return day
}

// Bounds returns the first and last calendar day of the bucket, inclusive.
func (p Period) Bounds() (time.Time, time.Time) {
	a := p.Anchor
	switch p.Kind {
	case Weekly:
		start := a.AddDate(0, 0, -int(a.Weekday()))
		return start, start.AddDate(0, 0, 6)
	case Monthly:
		start := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case Yearly:
		start := time.Date(a.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, time.Date(a.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return a, a
	}
}

// Contains reports whether a calendar day falls inside the bucket.
func (p Period) Contains(day time.Time) bool {
	switch p.Kind {
	case Daily:
		return day.Format(dateLayout) == p.Anchor.Format(dateLayout)
	case Weekly:
		start, end := p.Bounds()
		return !day.Before(start) && !day.After(end)
	case Monthly:
		return day.Year() == p.Anchor.Year() && day.Month() == p.Anchor.Month()
	case Yearly:
		return day.Year() == p.Anchor.Year()
	default:
		return false
	}
}

// Previous steps the anchor back by exactly one unit of the period kind.
// Monthly and yearly anchors are clamped to the first day so that stepping
// back from the 31st never skips a month.
func (p Period) Previous() Period {
	a := p.Anchor
	switch p.Kind {
	case Weekly:
		return Period{Kind: p.Kind, Anchor: a.AddDate(0, 0, -7)}
	case Monthly:
		return Period{Kind: p.Kind, Anchor: time.Date(a.Year(), a.Month()-1, 1, 0, 0, 0, 0, time.UTC)}
	case Yearly:
		return Period{Kind: p.Kind, Anchor: time.Date(a.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)}
	default:
		return Period{Kind: p.Kind, Anchor: a.AddDate(0, 0, -1)}
	}
}

func (p Period) Info() domain.ReportPeriodInfo {
	start, end := p.Bounds()
	return domain.ReportPeriodInfo{
		Type:               string(p.Kind),
		AnchorDate:         p.Anchor.Format(dateLayout),
		StartDate:          start.Format(dateLayout),
		EndDate:            end.Format(dateLayout),
		PreviousAnchorDate: p.Previous().Anchor.Format(dateLayout),
	}
}

// Dated is any record carrying a business date and a creation timestamp.
type Dated interface {
	DateFields() (date string, createdAt string)
}

// EffectiveDate is the record's date field when set, otherwise its creation
// timestamp truncated to the day.
func EffectiveDate(r Dated) (time.Time, bool) {
	date, createdAt := r.DateFields()
	if strings.TrimSpace(date) != "" {
		return parseDay(date)
	}
	return parseDay(createdAt)
}

// Filter keeps the records whose effective date falls inside p, in order.
// Records with a missing or unparseable date are dropped.
func Filter[T Dated](records []T, p Period) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		day, ok := EffectiveDate(r)
		if ok && p.Contains(day) {
			out = append(out, r)
		}
	}
	return out
}

func parseDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < len(dateLayout) {
		return time.Time{}, false
	}
	day, err := time.Parse(dateLayout, raw[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

var clockLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// hourOf returns the wall-clock hour recorded on r, if any.
func hourOf(r Dated) (int, bool) {
	date, createdAt := r.DateFields()
	for _, raw := range []string{date, createdAt} {
		raw = strings.TrimSpace(raw)
		if len(raw) <= len(dateLayout) {
			continue
		}
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Hour(), true
			}
		}
	}
	return 0, false
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
