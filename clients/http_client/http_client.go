package http_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"stockscenario/types"
	"stockscenario/utils/helpers"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// FinancialsFetcher is the narrow contract the analysis service
// depends on. Any failure aborts the whole analysis request.
type FinancialsFetcher interface {
	FetchFinancials(ctx context.Context, ticker string) (types.RawFinancials, error)
}

type yahooFetcher struct {
	client *http.Client
}

// NewFinancialsFetcher returns the default provider-backed fetcher.
func NewFinancialsFetcher() FinancialsFetcher {
	return &yahooFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// yahooValue wraps the provider's {raw, fmt} number encoding. Raw is
// nil when the provider reports the field as empty.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				RegularMarketPrice yahooValue `json:"regularMarketPrice"`
				MarketCap          yahooValue `json:"marketCap"`
				LongName           *string    `json:"longName"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE yahooValue `json:"trailingPE"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ProfitMargins     yahooValue `json:"profitMargins"`
				TotalRevenue      yahooValue `json:"totalRevenue"`
				FreeCashflow      yahooValue `json:"freeCashflow"`
				OperatingCashflow yahooValue `json:"operatingCashflow"`
			} `json:"financialData"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteSummary"`
}

func baseURL() string {
	if u := os.Getenv("MARKET_DATA_URL"); u != "" {
		return u
	}
	return "https://query1.finance.yahoo.com"
}

func quotePageURL() string {
	if u := os.Getenv("MARKET_QUOTE_URL"); u != "" {
		return u
	}
	return "https://finance.yahoo.com"
}

// FetchFinancials pulls the quoteSummary modules for a ticker and maps
// them into RawFinancials. Fields the provider omits stay nil; the
// extractor resolves them later. When the JSON endpoint fails, a
// scrape of the quote page is attempted before giving up.
func (y *yahooFetcher) FetchFinancials(ctx context.Context, ticker string) (types.RawFinancials, error) {
	raw, err := y.fetchQuoteSummary(ctx, ticker)
	if err == nil {
		return raw, nil
	}
	zap.L().Warn("quoteSummary fetch failed, falling back to page scrape",
		zap.String("ticker", ticker), zap.Error(err))

	raw, scrapeErr := y.scrapeQuotePage(ctx, ticker)
	if scrapeErr != nil {
		return types.RawFinancials{}, fmt.Errorf("market data unavailable for %s: %v (scrape fallback: %v)", ticker, err, scrapeErr)
	}
	return raw, nil
}

func (y *yahooFetcher) fetchQuoteSummary(ctx context.Context, ticker string) (types.RawFinancials, error) {
	params := url.Values{}
	params.Add("modules", "price,summaryDetail,financialData")

	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", baseURL(), url.PathEscape(ticker), params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return types.RawFinancials{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockscenario/1.0)")

	resp, err := y.client.Do(req)
	if err != nil {
		return types.RawFinancials{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return types.RawFinancials{}, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.RawFinancials{}, err
	}

	var summary quoteSummaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		zap.L().Error("Failed to unmarshal quoteSummary response", zap.Error(err))
		return types.RawFinancials{}, err
	}

	if len(summary.QuoteSummary.Result) == 0 {
		return types.RawFinancials{}, fmt.Errorf("no data for ticker %s", ticker)
	}

	r := summary.QuoteSummary.Result[0]
	return types.RawFinancials{
		CurrentPrice:      r.Price.RegularMarketPrice.Raw,
		TrailingPE:        r.SummaryDetail.TrailingPE.Raw,
		ProfitMargins:     r.FinancialData.ProfitMargins.Raw,
		MarketCap:         r.Price.MarketCap.Raw,
		TotalRevenue:      r.FinancialData.TotalRevenue.Raw,
		FreeCashflow:      r.FinancialData.FreeCashflow.Raw,
		OperatingCashflow: r.FinancialData.OperatingCashflow.Raw,
		LongName:          r.Price.LongName,
	}, nil
}

// scrapeQuotePage recovers price, market cap and trailing P/E from the
// public quote page. It yields a sparser snapshot than the JSON
// endpoint; the extractor's defaults cover the rest.
func (y *yahooFetcher) scrapeQuotePage(ctx context.Context, ticker string) (types.RawFinancials, error) {
	pageURL := fmt.Sprintf("%s/quote/%s", quotePageURL(), url.PathEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return types.RawFinancials{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockscenario/1.0)")

	resp, err := y.client.Do(req)
	if err != nil {
		return types.RawFinancials{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return types.RawFinancials{}, fmt.Errorf("failed to retrieve the content, status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return types.RawFinancials{}, err
	}

	var raw types.RawFinancials

	doc.Find(fmt.Sprintf(`fin-streamer[data-symbol=%q][data-field="regularMarketPrice"]`, ticker)).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := helpers.ParseAbbreviatedNumber(s.AttrOr("data-value", s.Text())); ok {
			raw.CurrentPrice = &v
		}
		return false
	})

	doc.Find(`td[data-test="MARKET_CAP-value"], fin-streamer[data-field="marketCap"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := helpers.ParseAbbreviatedNumber(strings.TrimSpace(s.Text())); ok {
			raw.MarketCap = &v
		}
		return false
	})

	doc.Find(`td[data-test="PE_RATIO-value"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := helpers.ParseAbbreviatedNumber(strings.TrimSpace(s.Text())); ok {
			raw.TrailingPE = &v
		}
		return false
	})

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		raw.LongName = &title
	}

	if raw.CurrentPrice == nil {
		return types.RawFinancials{}, fmt.Errorf("no quote found on page for %s", ticker)
	}
	return raw, nil
}
