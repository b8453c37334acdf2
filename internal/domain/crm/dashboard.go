package crm

import (
	"math"

	"github.com/shopspring/decimal"
)

// DashboardStats is the at-a-glance summary of a rep's book of business
type DashboardStats struct {
	PipelineValue   decimal.Decimal `json:"pipeline_value"`
	ActiveDeals     int64           `json:"active_deals"`
	FacilityCount   int64           `json:"facility_count"`
	ContactCount    int64           `json:"contact_count"`
	TasksDueToday   int64           `json:"tasks_due_today"`
	ClosedThisMonth decimal.Decimal `json:"closed_this_month"`
	WinRate         int             `json:"win_rate"`
}

// WinRate computes the win percentage over a set of closed deals,
// rounded to the nearest whole percent. No closed deals means 0.
func WinRate(won, lost int64) int {
	total := won + lost
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(won) / float64(total) * 100))
}
