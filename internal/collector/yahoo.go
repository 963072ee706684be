package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
// Price arrays carry JSON nulls for sessions without data; those become
// missing values, not dropped rows, so the normalizer sees them.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory downloads the historical bars for the given period and
// interval, including the adjusted close.
func (f *YahooFetcher) FetchHistory(symbol, period, interval string) (*series.Series, error) {
	if !Periods[period] {
		return nil, fmt.Errorf("yahoo: unknown period %q", period)
	}
	if !Intervals[interval] {
		return nil, fmt.Errorf("yahoo: unknown interval %q", interval)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s&includeAdjustedClose=true",
		f.BaseURL, url.PathEscape(symbol), interval, period)

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, series.ErrEmptyData)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, series.ErrEmptyData)
	}
	quote := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	dates := make([]time.Time, n)
	for i, ts := range result.Timestamp {
		dates[i] = time.Unix(ts, 0).UTC()
	}

	s := series.New(dates)
	s.SetColumn(series.ColOpen, toValues(quote.Open, n))
	s.SetColumn(series.ColHigh, toValues(quote.High, n))
	s.SetColumn(series.ColLow, toValues(quote.Low, n))
	s.SetColumn(series.ColClose, toValues(quote.Close, n))
	if len(result.Indicators.AdjClose) > 0 {
		s.SetColumn(series.ColAdjClose, toValues(result.Indicators.AdjClose[0].AdjClose, n))
	}
	s.SetColumn(series.ColVolume, toValues(quote.Volume, n))
	return s, nil
}

// toValues maps JSON null entries to the missing sentinel and pads short
// arrays so every column matches the timestamp count.
func toValues(src []*float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(src) && src[i] != nil {
			out[i] = *src[i]
		} else {
			out[i] = series.Missing()
		}
	}
	return out
}
