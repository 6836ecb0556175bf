package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// Timing is the turnaround estimate of a quote.
type Timing struct {
	EstimatedHours      int
	EstimatedCompletion time.Time
}

// EstimateCompletion scales repair minutes by the service level and rounds up
// to whole hours.
func EstimateCompletion(totalMinutes int, level ServiceLevel, now time.Time) Timing {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	hours := decimal.NewFromInt(int64(totalMinutes)).
		Mul(level.TimeMultiplier).
		Div(minutesPerHour).
		Ceil().
		IntPart()

	return Timing{
		EstimatedHours:      int(hours),
		EstimatedCompletion: now.Add(time.Duration(hours) * time.Hour),
	}
}
