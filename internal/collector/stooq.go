package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// StooqFetcher implements Fetcher using the Stooq CSV download endpoint.
// Stooq serves no adjusted close, so the canonical close falls back to the
// raw close downstream.
type StooqFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewStooqFetcher creates a new fetcher with optional proxy support.
func NewStooqFetcher(baseURL, proxyURL string) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://stooq.com"
	}
	return &StooqFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// stooqSymbol maps a plain US ticker to Stooq's ".us" suffix form. Symbols
// that already carry a market suffix pass through unchanged.
func stooqSymbol(symbol string) string {
	s := strings.ToLower(symbol)
	if strings.Contains(s, ".") || strings.HasPrefix(s, "^") {
		return s
	}
	return s + ".us"
}

func stooqInterval(interval string) (string, error) {
	switch interval {
	case "1d":
		return "d", nil
	case "1wk":
		return "w", nil
	case "1mo":
		return "m", nil
	default:
		return "", fmt.Errorf("unknown interval %q", interval)
	}
}

// FetchHistory downloads Date,Open,High,Low,Close,Volume rows for the
// requested window.
func (f *StooqFetcher) FetchHistory(symbol, period, interval string) (*series.Series, error) {
	iv, err := stooqInterval(interval)
	if err != nil {
		return nil, fmt.Errorf("stooq: %w", err)
	}
	now := time.Now()
	start, err := periodStart(period, now)
	if err != nil {
		return nil, fmt.Errorf("stooq: %w", err)
	}

	endpoint := fmt.Sprintf("%s/q/d/l/?s=%s&d1=%s&d2=%s&i=%s",
		f.BaseURL, url.QueryEscape(stooqSymbol(symbol)),
		start.Format("20060102"), now.Format("20060102"), iv)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stooq: status %d, body: %s", resp.StatusCode, string(body))
	}
	return parseStooqCSV(resp.Body, symbol)
}

func parseStooqCSV(r io.Reader, symbol string) (*series.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("stooq decode: %w", err)
	}
	// First row is the header; "No data" bodies have no rows at all.
	if len(records) < 2 {
		return nil, fmt.Errorf("stooq %s: %w", symbol, series.ErrEmptyData)
	}

	rows := records[1:]
	dates := make([]time.Time, 0, len(rows))
	open := make([]float64, 0, len(rows))
	high := make([]float64, 0, len(rows))
	low := make([]float64, 0, len(rows))
	cls := make([]float64, 0, len(rows))
	vol := make([]float64, 0, len(rows))

	for _, rec := range rows {
		if len(rec) < 5 {
			continue
		}
		d, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			continue
		}
		dates = append(dates, d)
		open = append(open, stooqValue(rec, 1))
		high = append(high, stooqValue(rec, 2))
		low = append(low, stooqValue(rec, 3))
		cls = append(cls, stooqValue(rec, 4))
		vol = append(vol, stooqValue(rec, 5))
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("stooq %s: %w", symbol, series.ErrEmptyData)
	}

	s := series.New(dates)
	s.SetColumn(series.ColOpen, open)
	s.SetColumn(series.ColHigh, high)
	s.SetColumn(series.ColLow, low)
	s.SetColumn(series.ColClose, cls)
	s.SetColumn(series.ColVolume, vol)
	return s, nil
}

// stooqValue parses one cell; empty or "N/D" cells become missing.
func stooqValue(rec []string, i int) float64 {
	if i >= len(rec) {
		return series.Missing()
	}
	v := strings.TrimSpace(rec[i])
	if v == "" || v == "N/D" {
		return series.Missing()
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return series.Missing()
	}
	return n
}
