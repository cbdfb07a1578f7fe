package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"stockscenario/services"
	"stockscenario/types"

	"github.com/gin-gonic/gin"
)

type stubFetcher struct {
	raw types.RawFinancials
	err error
}

func (s *stubFetcher) FetchFinancials(_ context.Context, _ string) (types.RawFinancials, error) {
	return s.raw, s.err
}

func testRouter(fetcher *stubFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAnalysisController(services.NewAnalysisService(fetcher), services.ReportService)

	r := gin.New()
	r.GET("/api/assumptions", controller.GetDefaultAssumptions)
	r.POST("/api/analyze", controller.RunAnalysis)
	r.POST("/api/exportXlsx", controller.ExportXLSX)
	return r
}

func healthyFetcher() *stubFetcher {
	price := 100.0
	pe := 25.0
	margin := 0.2
	mcap := 2000.0
	rev := 1000.0
	fcf := 150.0
	name := "Acme Corp"
	return &stubFetcher{raw: types.RawFinancials{
		CurrentPrice:  &price,
		TrailingPE:    &pe,
		ProfitMargins: &margin,
		MarketCap:     &mcap,
		TotalRevenue:  &rev,
		FreeCashflow:  &fcf,
		LongName:      &name,
	}}
}

func TestRunAnalysis_Success(t *testing.T) {
	router := testRouter(healthyFetcher())

	body := `{"ticker":"ACME","horizonYears":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if resp.RunID == "" {
		t.Errorf("Expected a run ID")
	}
	if resp.HorizonYears != 5 {
		t.Errorf("Expected horizon 5, got %d", resp.HorizonYears)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("Expected 3 scenario results, got %d", len(resp.Results))
	}
	if resp.Results[0].ScenarioName != "Bear" || resp.Results[2].ScenarioName != "Bull" {
		t.Errorf("Expected Bear..Bull ordering, got %v", resp.Results)
	}
	if len(resp.Chart) != 4 || resp.Chart[0].Label != "Current" {
		t.Errorf("Expected 4-point chart starting at Current, got %v", resp.Chart)
	}
}

func TestRunAnalysis_DefaultsHorizonWhenOmitted(t *testing.T) {
	router := testRouter(healthyFetcher())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"ticker":"ACME"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp types.AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if resp.HorizonYears != 5 {
		t.Errorf("Expected default horizon 5, got %d", resp.HorizonYears)
	}
}

func TestRunAnalysis_RejectsOutOfRangeHorizon(t *testing.T) {
	router := testRouter(healthyFetcher())

	for _, horizon := range []int{2, 11} {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"ticker":"ACME","horizonYears":%d}`, horizon)
		req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != 400 {
			t.Errorf("Expected 400 for horizon %d, got %d", horizon, w.Code)
		}
	}
}

func TestRunAnalysis_RejectsMissingTicker(t *testing.T) {
	router := testRouter(healthyFetcher())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"horizonYears":5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestRunAnalysis_FetchFailureAbortsRequest(t *testing.T) {
	router := testRouter(&stubFetcher{err: fmt.Errorf("no data for ticker NOPE")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"ticker":"NOPE"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != 502 {
		t.Errorf("Expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NOPE") {
		t.Errorf("Expected the error to name the ticker, got %s", w.Body.String())
	}
}

func TestRunAnalysis_AppliesScenarioOverrides(t *testing.T) {
	router := testRouter(healthyFetcher())

	body := `{"ticker":"ACME","horizonYears":5,"scenarios":{"Base":{"revenueGrowthPct":0}}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp types.AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if resp.Assumptions[1].RevenueGrowthPct != 0 {
		t.Errorf("Expected Base growth overridden to 0, got %v", resp.Assumptions[1].RevenueGrowthPct)
	}
	if resp.Assumptions[0].RevenueGrowthPct != 5 {
		t.Errorf("Expected Bear growth default 5, got %v", resp.Assumptions[0].RevenueGrowthPct)
	}
}

func TestGetDefaultAssumptions_RequiresTicker(t *testing.T) {
	router := testRouter(healthyFetcher())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/assumptions", nil)
	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestGetDefaultAssumptions_Success(t *testing.T) {
	router := testRouter(healthyFetcher())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/assumptions?ticker=ACME", nil)
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp types.AssumptionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if resp.Fundamentals.CompanyName != "Acme Corp" {
		t.Errorf("Expected company name from provider, got %v", resp.Fundamentals.CompanyName)
	}
	if len(resp.Assumptions) != 3 {
		t.Errorf("Expected 3 default scenarios, got %d", len(resp.Assumptions))
	}
}

func TestExportXLSX_ReturnsWorkbook(t *testing.T) {
	router := testRouter(healthyFetcher())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/exportXlsx", strings.NewReader(`{"ticker":"ACME"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Expected spreadsheet content type, got %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Errorf("Expected workbook bytes in response")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "ACME") {
		t.Errorf("Expected filename with ticker, got %s", cd)
	}
}
