package analyzer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Breakdown is the size of one status bucket within a group.
type Breakdown struct {
	Total uint64

	// Percentage is Total over the group size, times 100, rounded to two
	// decimal places.
	Percentage float64
}

// Summary is the status breakdown of one group.
type Summary struct {
	GroupKey     string
	Healthy      Breakdown
	Unhealthy    Breakdown
	Warning      Breakdown
	Inconclusive Breakdown
}

// Report is the payload delivered to analyzer observers.
type Report struct {
	ID        uuid.UUID
	Summaries []Summary
	Timestamp time.Time
}

var hundred = decimal.NewFromInt(100)

// breakdown returns count as a share of total. An empty group reports 0%.
func breakdown(count, total uint64) Breakdown {
	b := Breakdown{Total: count}
	if total == 0 {
		return b
	}
	pct := decimal.NewFromInt(int64(count)).Mul(hundred).DivRound(decimal.NewFromInt(int64(total)), 2)
	b.Percentage = pct.InexactFloat64()
	return b
}
