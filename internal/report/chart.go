package report

import (
	"github.com/shopspring/decimal"

	"backoffice/backend/internal/domain"
)

var (
	dailyLabels   = []string{"00:00", "04:00", "08:00", "12:00", "16:00", "20:00"}
	weeklyLabels  = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	monthlyLabels = []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}
	yearlyLabels  = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// ChartLabels is the fixed slot skeleton for a period kind.
func ChartLabels(kind Kind) []string {
	switch kind {
	case Daily:
		return dailyLabels
	case Weekly:
		return weeklyLabels
	case Monthly:
		return monthlyLabels
	case Yearly:
		return yearlyLabels
	default:
		return nil
	}
}

// chartSlot places a record on the sub-period axis of kind. Daily records
// without a time of day land in the first slot.
func chartSlot(kind Kind, r Dated) (int, bool) {
	day, ok := EffectiveDate(r)
	if !ok {
		return 0, false
	}
	switch kind {
	case Daily:
		hour, _ := hourOf(r)
		return hour / 4, true
	case Weekly:
		return int(day.Weekday()), true
	case Monthly:
		return (day.Day() - 1) / 7, true
	case Yearly:
		return int(day.Month()) - 1, true
	default:
		return 0, false
	}
}

type chartSeries struct {
	labels  []string
	revenue []decimal.Decimal
	profit  []decimal.Decimal
}

func newChartSeries(kind Kind) *chartSeries {
	labels := ChartLabels(kind)
	s := &chartSeries{
		labels:  labels,
		revenue: make([]decimal.Decimal, len(labels)),
		profit:  make([]decimal.Decimal, len(labels)),
	}
	for i := range labels {
		s.revenue[i] = decimal.Zero
		s.profit[i] = decimal.Zero
	}
	return s
}

func (s *chartSeries) add(slot int, revenue, profit decimal.Decimal) {
	if slot < 0 || slot >= len(s.labels) {
		return
	}
	s.revenue[slot] = s.revenue[slot].Add(revenue)
	s.profit[slot] = s.profit[slot].Add(profit)
}

func (s *chartSeries) points() []domain.ChartPoint {
	points := make([]domain.ChartPoint, len(s.labels))
	for i, label := range s.labels {
		points[i] = domain.ChartPoint{
			Label:   label,
			Revenue: s.revenue[i].Round(2).InexactFloat64(),
			Profit:  s.profit[i].Round(2).InexactFloat64(),
		}
	}
	return points
}
