package services

import (
	"stockscenario/types"
)

// Defaults applied when the provider omits a field. MarketCap and
// Revenue fall back to 1 rather than 0 because both are denominators
// in the projection engine.
const (
	defaultMarketCap = 1.0
	defaultRevenue   = 1.0
)

// ExtractFundamentals resolves a possibly-incomplete RawFinancials
// snapshot into a fully-populated Fundamentals value. It never fails:
// every missing field is replaced by its documented default, so no
// optionality leaks past this function.
func ExtractFundamentals(ticker string, raw types.RawFinancials) types.Fundamentals {
	f := types.Fundamentals{
		Ticker:    ticker,
		MarketCap: defaultMarketCap,
		Revenue:   defaultRevenue,
	}

	if raw.CurrentPrice != nil {
		f.Price = *raw.CurrentPrice
	}

	// Negative trailing P/E values are kept as-is; only a missing
	// value becomes 0. P/E is display-only downstream.
	if raw.TrailingPE != nil {
		f.PERatio = *raw.TrailingPE
	}

	if raw.ProfitMargins != nil {
		f.ProfitMarginPct = *raw.ProfitMargins * 100
	}

	if raw.MarketCap != nil {
		f.MarketCap = *raw.MarketCap
	}
	if raw.TotalRevenue != nil {
		f.Revenue = *raw.TotalRevenue
	}

	// One-level fallback chain: free cash flow, then operating cash
	// flow, then 0. No further estimation.
	switch {
	case raw.FreeCashflow != nil:
		f.FreeCashFlow = *raw.FreeCashflow
	case raw.OperatingCashflow != nil:
		f.FreeCashFlow = *raw.OperatingCashflow
	}

	if f.MarketCap != 0 {
		f.FCFYieldPct = f.FreeCashFlow / f.MarketCap * 100
	}
	if f.Revenue != 0 {
		f.FCFMarginPct = f.FreeCashFlow / f.Revenue * 100
	}

	f.CompanyName = ticker
	if raw.LongName != nil && *raw.LongName != "" {
		f.CompanyName = *raw.LongName
	}

	return f
}
