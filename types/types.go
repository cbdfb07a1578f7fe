package types

import "time"

// RawFinancials is the untyped snapshot returned by the market-data
// provider. Every field is optional; a nil pointer means the provider
// did not report the value for this ticker.
type RawFinancials struct {
	CurrentPrice      *float64 `json:"currentPrice"`
	TrailingPE        *float64 `json:"trailingPE"`
	ProfitMargins     *float64 `json:"profitMargins"`
	MarketCap         *float64 `json:"marketCap"`
	TotalRevenue      *float64 `json:"totalRevenue"`
	FreeCashflow      *float64 `json:"freeCashflow"`
	OperatingCashflow *float64 `json:"operatingCashflow"`
	LongName          *string  `json:"longName"`
}

// Fundamentals is the fully-resolved current state of a company. It is
// derived once per analysis run and every field has a defined value:
// missing provider data is replaced by the documented defaults in
// services.ExtractFundamentals.
type Fundamentals struct {
	Ticker          string  `json:"ticker"`
	CompanyName     string  `json:"companyName"`
	Price           float64 `json:"price"`
	PERatio         float64 `json:"peRatio"`
	ProfitMarginPct float64 `json:"profitMarginPct"`
	MarketCap       float64 `json:"marketCap"`
	Revenue         float64 `json:"revenue"`
	FreeCashFlow    float64 `json:"freeCashFlow"`
	FCFYieldPct     float64 `json:"fcfYieldPct"`
	FCFMarginPct    float64 `json:"fcfMarginPct"`
}

// Scenario names, in the order they are projected and charted.
const (
	ScenarioBear = "Bear"
	ScenarioBase = "Base"
	ScenarioBull = "Bull"
)

// ScenarioAssumptions is one named set of user-editable projection
// inputs. No range validation is applied; negative growth or margins
// are legal.
type ScenarioAssumptions struct {
	Name                  string  `json:"name"`
	RevenueGrowthPct      float64 `json:"revenueGrowthPct"`
	TargetProfitMarginPct float64 `json:"targetProfitMarginPct"`
	TargetFCFMarginPct    float64 `json:"targetFcfMarginPct"`
	ExitPE                float64 `json:"exitPE"`
	ExitFCFYieldPct       float64 `json:"exitFcfYieldPct"`
}

// AssumptionOverrides carries a partial edit of one scenario's
// assumptions. Nil fields keep the computed default.
type AssumptionOverrides struct {
	RevenueGrowthPct      *float64 `json:"revenueGrowthPct"`
	TargetProfitMarginPct *float64 `json:"targetProfitMarginPct"`
	TargetFCFMarginPct    *float64 `json:"targetFcfMarginPct"`
	ExitPE                *float64 `json:"exitPE"`
	ExitFCFYieldPct       *float64 `json:"exitFcfYieldPct"`
}

// ScenarioResult is the projected outcome for one scenario over the
// requested horizon. Prices are per share, CAGRs are fractions
// (0.25 == 25% annualized).
type ScenarioResult struct {
	ScenarioName   string  `json:"scenarioName"`
	EPSTargetPrice float64 `json:"epsTargetPrice"`
	EPSCagr        float64 `json:"epsCagr"`
	FCFTargetPrice float64 `json:"fcfTargetPrice"`
	FCFCagr        float64 `json:"fcfCagr"`
	AvgTargetPrice float64 `json:"avgTargetPrice"`
	AvgCagr        float64 `json:"avgCagr"`
}

// ChartPoint is one bar in the price-target chart handed to the
// rendering collaborator.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// AnalysisRequest is the inbound body for /api/analyze and
// /api/exportXlsx. HorizonYears defaults to 5 when omitted.
type AnalysisRequest struct {
	Ticker       string                         `json:"ticker" binding:"required"`
	HorizonYears int                            `json:"horizonYears" binding:"omitempty,min=3,max=10"`
	Scenarios    map[string]AssumptionOverrides `json:"scenarios"`
}

// AnalysisResponse is the full outcome of one analysis run.
type AnalysisResponse struct {
	RunID        string                `json:"runId"`
	Ticker       string                `json:"ticker"`
	HorizonYears int                   `json:"horizonYears"`
	Fundamentals Fundamentals          `json:"fundamentals"`
	Assumptions  []ScenarioAssumptions `json:"assumptions"`
	Results      []ScenarioResult      `json:"results"`
	Chart        []ChartPoint          `json:"chart"`
}

// AssumptionsResponse is returned by /api/assumptions before the user
// has edited anything.
type AssumptionsResponse struct {
	Ticker       string                `json:"ticker"`
	Fundamentals Fundamentals          `json:"fundamentals"`
	Assumptions  []ScenarioAssumptions `json:"assumptions"`
}

// StockScenarioEvent is published to Kafka/RabbitMQ after each
// successful analysis run.
type StockScenarioEvent struct {
	RunID        string             `json:"runId"`
	Ticker       string             `json:"ticker"`
	CompanyName  string             `json:"companyName"`
	HorizonYears int                `json:"horizonYears"`
	CurrentPrice float64            `json:"currentPrice"`
	AvgTargets   map[string]float64 `json:"avgTargets"`
	Timestamp    time.Time          `json:"timestamp"`
}
