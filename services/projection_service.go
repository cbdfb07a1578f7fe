package services

import (
	"math"

	"stockscenario/types"
)

// Chart colors per category, fixed for the rendering collaborator.
var scenarioColors = map[string]string{
	"Current":          "#29b5e8",
	types.ScenarioBear: "#ff4b4b",
	types.ScenarioBase: "#7d7d7d",
	types.ScenarioBull: "#09ab3b",
}

// DefaultAssumptions seeds the three named scenarios from the current
// fundamentals: Base mirrors today's margins, Bear shades everything
// down 5 points with cheaper exit multiples, Bull shades up 5 points
// with richer ones. The caller owns the returned values; edits never
// feed back into Fundamentals.
func DefaultAssumptions(f types.Fundamentals) []types.ScenarioAssumptions {
	return []types.ScenarioAssumptions{
		{
			Name:                  types.ScenarioBear,
			RevenueGrowthPct:      5,
			TargetProfitMarginPct: f.ProfitMarginPct - 5,
			TargetFCFMarginPct:    f.FCFMarginPct - 5,
			ExitPE:                15,
			ExitFCFYieldPct:       6,
		},
		{
			Name:                  types.ScenarioBase,
			RevenueGrowthPct:      10,
			TargetProfitMarginPct: f.ProfitMarginPct,
			TargetFCFMarginPct:    f.FCFMarginPct,
			ExitPE:                20,
			ExitFCFYieldPct:       4,
		},
		{
			Name:                  types.ScenarioBull,
			RevenueGrowthPct:      15,
			TargetProfitMarginPct: f.ProfitMarginPct + 5,
			TargetFCFMarginPct:    f.FCFMarginPct + 5,
			ExitPE:                25,
			ExitFCFYieldPct:       3,
		},
	}
}

// ApplyOverrides merges user edits over the computed defaults,
// field by field. Scenarios without an override entry pass through
// unchanged. No range checks: negative growth or margins are legal
// inputs and flow into the engine as-is.
func ApplyOverrides(defaults []types.ScenarioAssumptions, overrides map[string]types.AssumptionOverrides) []types.ScenarioAssumptions {
	merged := make([]types.ScenarioAssumptions, len(defaults))
	copy(merged, defaults)
	for i := range merged {
		o, ok := overrides[merged[i].Name]
		if !ok {
			continue
		}
		if o.RevenueGrowthPct != nil {
			merged[i].RevenueGrowthPct = *o.RevenueGrowthPct
		}
		if o.TargetProfitMarginPct != nil {
			merged[i].TargetProfitMarginPct = *o.TargetProfitMarginPct
		}
		if o.TargetFCFMarginPct != nil {
			merged[i].TargetFCFMarginPct = *o.TargetFCFMarginPct
		}
		if o.ExitPE != nil {
			merged[i].ExitPE = *o.ExitPE
		}
		if o.ExitFCFYieldPct != nil {
			merged[i].ExitFCFYieldPct = *o.ExitFCFYieldPct
		}
	}
	return merged
}

// Project runs the scenario engine: for each assumption set it
// compounds revenue over the horizon, applies the target margins,
// converts the two exit valuations to per-share prices and derives the
// implied annualized return for each. Results come back in the order
// the scenarios were given. The function is pure; identical inputs
// produce identical outputs.
func Project(f types.Fundamentals, scenarios []types.ScenarioAssumptions, horizonYears int) []types.ScenarioResult {
	results := make([]types.ScenarioResult, 0, len(scenarios))
	n := float64(horizonYears)

	for _, s := range scenarios {
		futureRev := f.Revenue * math.Pow(1+s.RevenueGrowthPct/100, n)
		futureEarnings := futureRev * (s.TargetProfitMarginPct / 100)
		futureFCF := futureRev * (s.TargetFCFMarginPct / 100)

		targetMcapEPS := futureEarnings * s.ExitPE

		// A zero or negative exit yield values the cash flow stream
		// at zero rather than failing the run.
		targetMcapFCF := 0.0
		if s.ExitFCFYieldPct > 0 {
			targetMcapFCF = futureFCF / (s.ExitFCFYieldPct / 100)
		}

		shares := impliedShares(f.MarketCap, f.Price)

		priceEPS := targetMcapEPS / shares
		priceFCF := targetMcapFCF / shares
		avgPrice := (priceEPS + priceFCF) / 2

		results = append(results, types.ScenarioResult{
			ScenarioName:   s.Name,
			EPSTargetPrice: priceEPS,
			EPSCagr:        cagr(priceEPS, f.Price, n),
			FCFTargetPrice: priceFCF,
			FCFCagr:        cagr(priceFCF, f.Price, n),
			AvgTargetPrice: avgPrice,
			AvgCagr:        cagr(avgPrice, f.Price, n),
		})
	}

	return results
}

// impliedShares backs shares outstanding out of market cap and price.
// A zero result (zero market cap, or the +Inf/NaN collapse when price
// is 0) is replaced by 1, the same sentinel the extractor uses for
// empty denominators.
func impliedShares(marketCap, price float64) float64 {
	shares := marketCap / price
	if shares == 0 {
		shares = 1
	}
	return shares
}

// cagr is (end/start)^(1/n) - 1, or 0 when there is no meaningful
// starting price. The formula is applied verbatim to zero or negative
// targets; a negative ratio raised to a fractional power is NaN and is
// passed through rather than clamped.
func cagr(targetPrice, currentPrice, years float64) float64 {
	if currentPrice <= 0 {
		return 0
	}
	return math.Pow(targetPrice/currentPrice, 1/years) - 1
}

// BuildChartSeries assembles the bar-chart series for the rendering
// collaborator: a "Current" bar at today's price followed by one bar
// per scenario at its average target.
func BuildChartSeries(f types.Fundamentals, results []types.ScenarioResult) []types.ChartPoint {
	chart := make([]types.ChartPoint, 0, len(results)+1)
	chart = append(chart, types.ChartPoint{
		Label: "Current",
		Value: f.Price,
		Color: scenarioColors["Current"],
	})
	for _, r := range results {
		chart = append(chart, types.ChartPoint{
			Label: r.ScenarioName,
			Value: r.AvgTargetPrice,
			Color: scenarioColors[r.ScenarioName],
		})
	}
	return chart
}
