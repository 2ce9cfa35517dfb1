// Package metrics computes period-bounded aggregate statistics and
// period-over-period variation from claim snapshots. All functions are pure
// over their inputs; the reference instant is always passed in so window
// math is reproducible.
package metrics

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claimboard/claimboard/internal/core"
)

// PeriodStats are the aggregates over one date window.
type PeriodStats struct {
	NewClaims      int     `json:"newClaims"`
	AcceptedClaims int     `json:"acceptedClaims"`
	TotalClaimed   float64 `json:"totalClaimed"`
	TotalAccepted  float64 `json:"totalAccepted"`
}

// Metric pairs a current value with its percentage variation against the
// comparison window. Variation is +Inf when the comparison value was zero
// and the current one positive; that case serializes and displays as "N/A"
// since JSON has no infinity.
type Metric struct {
	Value     float64
	Variation float64
}

// Display returns the variation formatted for presentation.
func (m Metric) Display() string {
	if math.IsInf(m.Variation, 1) {
		return "N/A"
	}
	return strconv.FormatFloat(m.Variation, 'f', 1, 64) + "%"
}

// MarshalJSON renders an infinite variation as the string "N/A".
func (m Metric) MarshalJSON() ([]byte, error) {
	var variation any = m.Variation
	if math.IsInf(m.Variation, 1) {
		variation = "N/A"
	}
	return json.Marshal(struct {
		Value     float64 `json:"value"`
		Variation any     `json:"variation"`
	}{Value: m.Value, Variation: variation})
}

// KPISet is the full key-performance snapshot for one trailing window.
type KPISet struct {
	NewClaims      Metric `json:"newClaims"`
	AcceptedClaims Metric `json:"acceptedClaims"`
	TotalClaimed   Metric `json:"totalClaimed"`
	TotalAccepted  Metric `json:"totalAccepted"`
}

// ClientTotal is one entry of the top-clients ranking.
type ClientTotal struct {
	Name         string  `json:"name"`
	TotalClaimed float64 `json:"value"`
}

// MonthBucket aggregates the claims created in one calendar month.
type MonthBucket struct {
	Month     string  `json:"month"` // YYYY-MM
	Reclamado float64 `json:"reclamado"`
	Aceptado  float64 `json:"aceptado"`
	Count     int     `json:"count"`
}

// creationDate parses a claim's canonical creation date. Claims with an
// empty or malformed date fall outside every window.
func creationDate(c core.Claim) (time.Time, bool) {
	if c.FechaCreacion == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", c.FechaCreacion)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Stats aggregates the claims whose creation date falls within
// [start, end] inclusive. Accepted counts both SI and PARCIAL claims.
func Stats(records []core.Claim, start, end time.Time) PeriodStats {
	var s PeriodStats
	for _, c := range records {
		t, ok := creationDate(c)
		if !ok || t.Before(start) || t.After(end) {
			continue
		}
		s.NewClaims++
		if c.Estado == core.StatusSi || c.Estado == core.StatusParcial {
			s.AcceptedClaims++
		}
		s.TotalClaimed += c.MontoReclamado
		s.TotalAccepted += c.MontoAceptado
	}
	return s
}

// variation is the percentage change from previous to current: 0 when both
// are zero, +Inf when only the previous value is zero.
func variation(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// KPIs computes the trailing-window aggregates of currentRecords and their
// variation against the immediately preceding window of equal length. The
// comparison window is evaluated over previousRecords when given, else over
// currentRecords themselves (self-comparison fallback when no prior
// snapshot exists). now anchors the end of the current window.
func KPIs(currentRecords, previousRecords []core.Claim, windowDays int, now time.Time) KPISet {
	endCur := now
	startCur := now.AddDate(0, 0, -windowDays)
	endPrev := startCur.AddDate(0, 0, -1)
	startPrev := endPrev.AddDate(0, 0, -windowDays+1)

	cur := Stats(currentRecords, startCur, endCur)
	comparison := previousRecords
	if comparison == nil {
		comparison = currentRecords
	}
	prev := Stats(comparison, startPrev, endPrev)

	return KPISet{
		NewClaims:      Metric{Value: float64(cur.NewClaims), Variation: variation(float64(cur.NewClaims), float64(prev.NewClaims))},
		AcceptedClaims: Metric{Value: float64(cur.AcceptedClaims), Variation: variation(float64(cur.AcceptedClaims), float64(prev.AcceptedClaims))},
		TotalClaimed:   Metric{Value: cur.TotalClaimed, Variation: variation(cur.TotalClaimed, prev.TotalClaimed)},
		TotalAccepted:  Metric{Value: cur.TotalAccepted, Variation: variation(cur.TotalAccepted, prev.TotalAccepted)},
	}
}

// TopClients ranks clients by claimed amount over the trailing window,
// descending, truncated to limit. Ties keep the order clients first
// appeared in the record list.
func TopClients(records []core.Claim, windowDays, limit int, now time.Time) []ClientTotal {
	if limit <= 0 {
		limit = 5
	}
	start := now.AddDate(0, 0, -windowDays)

	totals := make(map[string]float64)
	var order []string
	for _, c := range records {
		t, ok := creationDate(c)
		if !ok || t.Before(start) {
			continue
		}
		if _, seen := totals[c.Cliente]; !seen {
			order = append(order, c.Cliente)
		}
		totals[c.Cliente] += c.MontoReclamado
	}

	ranked := make([]ClientTotal, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, ClientTotal{Name: name, TotalClaimed: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalClaimed > ranked[j].TotalClaimed
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MonthlyAggregates groups claims by the month of their creation date and
// sums claimed and accepted amounts. Claims without a creation date are
// skipped. Buckets are sorted chronologically.
func MonthlyAggregates(records []core.Claim) []MonthBucket {
	byMonth := make(map[string]*MonthBucket)
	for _, c := range records {
		if len(c.FechaCreacion) < 7 {
			continue
		}
		month := c.FechaCreacion[:7]
		b, ok := byMonth[month]
		if !ok {
			b = &MonthBucket{Month: month}
			byMonth[month] = b
		}
		b.Reclamado += c.MontoReclamado
		b.Aceptado += c.MontoAceptado
		b.Count++
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// ClaimsInMonth filters to the claims created in the given YYYY-MM month.
func ClaimsInMonth(records []core.Claim, month string) []core.Claim {
	var out []core.Claim
	for _, c := range records {
		if c.FechaCreacion != "" && strings.HasPrefix(c.FechaCreacion, month) {
			out = append(out, c)
		}
	}
	return out
}

// RecentlyModified returns the claims whose quality date falls within the
// trailing window and differs from their creation date.
func RecentlyModified(records []core.Claim, windowDays int, now time.Time) []core.Claim {
	start := now.AddDate(0, 0, -windowDays)
	var out []core.Claim
	for _, c := range records {
		if c.FechaCalidad == "" || c.FechaCalidad == c.FechaCreacion {
			continue
		}
		t, err := time.Parse("2006-01-02", c.FechaCalidad)
		if err != nil || t.Before(start) {
			continue
		}
		out = append(out, c)
	}
	return out
}
