package model

// StatusCounts holds per-status lead counts as reported by the store.
type StatusCounts struct {
	Total    int
	Sourced  int
	Verified int
	Enriched int
	Rejected int
}

// GrowthMetrics carries period-over-period growth numbers for the dashboard.
// Historical snapshots are not tracked yet, so these stay zero.
type GrowthMetrics struct {
	TotalLeadsGrowth     float64 `json:"totalLeadsGrowth"`
	QualifiedLeadsGrowth float64 `json:"qualifiedLeadsGrowth"`
	ConversionRateGrowth float64 `json:"conversionRateGrowth"`
	RevenueGrowth        float64 `json:"revenueGrowth"`
}

// DashboardStats is the aggregate view rendered on the dashboard landing page.
type DashboardStats struct {
	TotalLeads     int           `json:"totalLeads"`
	QualifiedLeads int           `json:"qualifiedLeads"`
	ConversionRate float64       `json:"conversionRate"`
	Revenue        float64       `json:"revenue"`
	GrowthMetrics  GrowthMetrics `json:"growthMetrics"`
}

// StatsFromCounts derives dashboard stats from raw status counts.
// Qualified covers verified and enriched leads; the conversion rate is the
// share of enriched leads, rounded to one decimal place.
func StatsFromCounts(c StatusCounts) DashboardStats {
	qualified := c.Verified + c.Enriched
	rate := 0.0
	if c.Total > 0 {
		rate = float64(c.Enriched) / float64(c.Total) * 100
		rate = float64(int(rate*10+0.5)) / 10
	}
	return DashboardStats{
		TotalLeads:     c.Total,
		QualifiedLeads: qualified,
		ConversionRate: rate,
		Revenue:        0,
		GrowthMetrics:  GrowthMetrics{},
	}
}
