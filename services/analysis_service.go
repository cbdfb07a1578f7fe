package services

import (
	"context"
	"fmt"
	"time"

	"stockscenario/clients/http_client"
	kafka_client "stockscenario/clients/kafka"
	rabbitmq_client "stockscenario/clients/rabbitmq"
	"stockscenario/types"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHorizonYears is used when a request omits the horizon.
const DefaultHorizonYears = 5

type AnalysisServiceI interface {
	DefaultScenarios(ctx context.Context, ticker string) (types.AssumptionsResponse, error)
	Analyze(ctx context.Context, req types.AnalysisRequest) (types.AnalysisResponse, error)
}

type analysisService struct {
	fetcher http_client.FinancialsFetcher
}

var AnalysisService AnalysisServiceI = &analysisService{fetcher: http_client.NewFinancialsFetcher()}

// NewAnalysisService builds a service around a specific fetcher.
// Tests pass a stub here.
func NewAnalysisService(fetcher http_client.FinancialsFetcher) AnalysisServiceI {
	return &analysisService{fetcher: fetcher}
}

// DefaultScenarios fetches and extracts the current fundamentals and
// returns them with the three seeded assumption sets, before any user
// edits.
func (a *analysisService) DefaultScenarios(ctx context.Context, ticker string) (types.AssumptionsResponse, error) {
	span := sentry.StartSpan(ctx, "[SVC] DefaultScenarios")
	defer span.Finish()

	raw, err := a.fetcher.FetchFinancials(ctx, ticker)
	if err != nil {
		sentry.CaptureException(err)
		return types.AssumptionsResponse{}, fmt.Errorf("fetching financials for %s: %w", ticker, err)
	}

	fundamentals := ExtractFundamentals(ticker, raw)
	return types.AssumptionsResponse{
		Ticker:       ticker,
		Fundamentals: fundamentals,
		Assumptions:  DefaultAssumptions(fundamentals),
	}, nil
}

// Analyze runs one full analysis: fetch, extract, merge assumption
// overrides, project, chart. Each call builds everything fresh; no
// state survives between runs.
func (a *analysisService) Analyze(ctx context.Context, req types.AnalysisRequest) (types.AnalysisResponse, error) {
	span := sentry.StartSpan(ctx, "[SVC] Analyze")
	defer span.Finish()

	horizon := req.HorizonYears
	if horizon == 0 {
		horizon = DefaultHorizonYears
	}

	raw, err := a.fetcher.FetchFinancials(ctx, req.Ticker)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusUnavailable
		return types.AnalysisResponse{}, fmt.Errorf("fetching financials for %s: %w", req.Ticker, err)
	}

	fundamentals := ExtractFundamentals(req.Ticker, raw)
	scenarios := ApplyOverrides(DefaultAssumptions(fundamentals), req.Scenarios)
	results := Project(fundamentals, scenarios, horizon)

	response := types.AnalysisResponse{
		RunID:        uuid.New().String(),
		Ticker:       req.Ticker,
		HorizonYears: horizon,
		Fundamentals: fundamentals,
		Assumptions:  scenarios,
		Results:      results,
		Chart:        BuildChartSeries(fundamentals, results),
	}

	zap.L().Info("Analysis run completed",
		zap.String("runId", response.RunID),
		zap.String("ticker", req.Ticker),
		zap.Int("horizonYears", horizon))

	publishAnalysisEvent(response)
	return response, nil
}

// publishAnalysisEvent fans the run summary out to the configured
// brokers. Publishing is best-effort and never fails the request.
func publishAnalysisEvent(response types.AnalysisResponse) {
	avgTargets := make(map[string]float64, len(response.Results))
	for _, r := range response.Results {
		avgTargets[r.ScenarioName] = r.AvgTargetPrice
	}

	event := types.StockScenarioEvent{
		RunID:        response.RunID,
		Ticker:       response.Ticker,
		CompanyName:  response.Fundamentals.CompanyName,
		HorizonYears: response.HorizonYears,
		CurrentPrice: response.Fundamentals.Price,
		AvgTargets:   avgTargets,
		Timestamp:    time.Now().UTC(),
	}

	kafka_client.SendMessage(event)
	rabbitmq_client.SendMessage(event)
}
