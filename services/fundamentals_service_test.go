package services

import (
	"testing"

	"stockscenario/types"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func fullRaw() types.RawFinancials {
	return types.RawFinancials{
		CurrentPrice:      fptr(100),
		TrailingPE:        fptr(25),
		ProfitMargins:     fptr(0.2),
		MarketCap:         fptr(2000),
		TotalRevenue:      fptr(1000),
		FreeCashflow:      fptr(150),
		OperatingCashflow: fptr(180),
		LongName:          sptr("Acme Corp"),
	}
}

func TestExtractFundamentals_AllFieldsPresent(t *testing.T) {
	f := ExtractFundamentals("ACME", fullRaw())

	if f.Price != 100 {
		t.Errorf("Expected price 100, got %v", f.Price)
	}
	if f.PERatio != 25 {
		t.Errorf("Expected peRatio 25, got %v", f.PERatio)
	}
	if f.ProfitMarginPct != 20 {
		t.Errorf("Expected profitMarginPct 20, got %v", f.ProfitMarginPct)
	}
	if f.MarketCap != 2000 {
		t.Errorf("Expected marketCap 2000, got %v", f.MarketCap)
	}
	if f.Revenue != 1000 {
		t.Errorf("Expected revenue 1000, got %v", f.Revenue)
	}
	if f.FreeCashFlow != 150 {
		t.Errorf("Expected freeCashFlow 150, got %v", f.FreeCashFlow)
	}
	if f.FCFYieldPct != 7.5 {
		t.Errorf("Expected fcfYieldPct 7.5, got %v", f.FCFYieldPct)
	}
	if f.FCFMarginPct != 15 {
		t.Errorf("Expected fcfMarginPct 15, got %v", f.FCFMarginPct)
	}
	if f.CompanyName != "Acme Corp" {
		t.Errorf("Expected companyName 'Acme Corp', got %v", f.CompanyName)
	}
}

func TestExtractFundamentals_EmptyInputUsesDefaults(t *testing.T) {
	f := ExtractFundamentals("XYZ", types.RawFinancials{})

	if f.Price != 0 {
		t.Errorf("Expected price 0, got %v", f.Price)
	}
	if f.PERatio != 0 {
		t.Errorf("Expected peRatio 0, got %v", f.PERatio)
	}
	if f.MarketCap != 1 {
		t.Errorf("Expected marketCap sentinel 1, got %v", f.MarketCap)
	}
	if f.Revenue != 1 {
		t.Errorf("Expected revenue sentinel 1, got %v", f.Revenue)
	}
	if f.FreeCashFlow != 0 {
		t.Errorf("Expected freeCashFlow 0, got %v", f.FreeCashFlow)
	}
	if f.FCFYieldPct != 0 {
		t.Errorf("Expected fcfYieldPct 0, got %v", f.FCFYieldPct)
	}
	if f.FCFMarginPct != 0 {
		t.Errorf("Expected fcfMarginPct 0, got %v", f.FCFMarginPct)
	}
	if f.CompanyName != "XYZ" {
		t.Errorf("Expected companyName to fall back to ticker, got %v", f.CompanyName)
	}
}

func TestExtractFundamentals_NegativePEPreserved(t *testing.T) {
	raw := fullRaw()
	raw.TrailingPE = fptr(-12.5)
	f := ExtractFundamentals("ACME", raw)
	if f.PERatio != -12.5 {
		t.Errorf("Expected negative P/E to be preserved, got %v", f.PERatio)
	}
}

func TestExtractFundamentals_FCFFallsBackToOperatingCashflow(t *testing.T) {
	raw := fullRaw()
	raw.FreeCashflow = nil
	f := ExtractFundamentals("ACME", raw)
	if f.FreeCashFlow != 180 {
		t.Errorf("Expected operating cash flow fallback 180, got %v", f.FreeCashFlow)
	}
}

func TestExtractFundamentals_FCFDefaultsToZeroWhenBothMissing(t *testing.T) {
	raw := fullRaw()
	raw.FreeCashflow = nil
	raw.OperatingCashflow = nil
	f := ExtractFundamentals("ACME", raw)
	if f.FreeCashFlow != 0 {
		t.Errorf("Expected freeCashFlow 0, got %v", f.FreeCashFlow)
	}
}

func TestExtractFundamentals_MissingMarketCapUsesSentinel(t *testing.T) {
	raw := fullRaw()
	raw.MarketCap = nil
	f := ExtractFundamentals("ACME", raw)
	if f.MarketCap != 1 {
		t.Errorf("Expected marketCap sentinel 1, got %v", f.MarketCap)
	}
	// Sentinel keeps the yield defined: 150 / 1 * 100.
	if f.FCFYieldPct != 15000 {
		t.Errorf("Expected fcfYieldPct 15000 with sentinel denominator, got %v", f.FCFYieldPct)
	}
}

func TestExtractFundamentals_ZeroMarketCapGuardsYield(t *testing.T) {
	raw := fullRaw()
	raw.MarketCap = fptr(0)
	f := ExtractFundamentals("ACME", raw)
	if f.FCFYieldPct != 0 {
		t.Errorf("Expected fcfYieldPct 0 for zero marketCap, got %v", f.FCFYieldPct)
	}
}

func TestExtractFundamentals_EmptyLongNameFallsBackToTicker(t *testing.T) {
	raw := fullRaw()
	raw.LongName = sptr("")
	f := ExtractFundamentals("ACME", raw)
	if f.CompanyName != "ACME" {
		t.Errorf("Expected ticker fallback, got %v", f.CompanyName)
	}
}
