package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

const tableAResponse = `[{"table":"A","no":"051/A/NBP/2024","effectiveDate":"2024-03-12","rates":[
{"currency":"bat (Tajlandia)","code":"THB","mid":0.1107},
{"currency":"dolar amerykański","code":"USD","mid":3.9321},
{"currency":"euro","code":"EUR","mid":4.3013},
{"currency":"frank szwajcarski","code":"CHF","mid":4.4793}]}]`

func TestNBPClient(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and filters table A", func(t *testing.T) {
		var gotPath, gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path + "?" + r.URL.RawQuery
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(tableAResponse))
		}))
		defer srv.Close()

		client := NewNBPClient(srv.URL+"/", time.Second)
		table, err := client.Latest(ctx, []string{"EUR", "USD", "JPY"})
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}

		if gotPath != "/api/exchangerates/tables/a/?format=json" {
			t.Errorf("request path = %q", gotPath)
		}
		if gotAgent == "" {
			t.Error("expected User-Agent header")
		}
		if want := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC); !table.EffectiveDate.Equal(want) {
			t.Errorf("EffectiveDate = %v, want %v", table.EffectiveDate, want)
		}
		if len(table.Rates) != 2 {
			t.Fatalf("len(Rates) = %d, want 2", len(table.Rates))
		}
		if table.Rates[0].Code != "EUR" || !table.Rates[0].Mid.Equal(decimal.RequireFromString("4.3013")) {
			t.Errorf("Rates[0] = %+v", table.Rates[0])
		}
		if table.Rates[1].Code != "USD" {
			t.Errorf("Rates[1].Code = %q, want USD", table.Rates[1].Code)
		}
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		if _, err := NewNBPClient(srv.URL, time.Second).Latest(ctx, []string{"USD"}); err == nil {
			t.Error("expected error for 503 response")
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"oops":`))
		}))
		defer srv.Close()

		if _, err := NewNBPClient(srv.URL, time.Second).Latest(ctx, []string{"USD"}); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("empty array is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		if _, err := NewNBPClient(srv.URL, time.Second).Latest(ctx, []string{"USD"}); err == nil {
			t.Error("expected error for empty response")
		}
	})

	t.Run("timeout is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(tableAResponse))
		}))
		defer srv.Close()

		if _, err := NewNBPClient(srv.URL, 20*time.Millisecond).Latest(ctx, []string{"USD"}); err == nil {
			t.Error("expected timeout error")
		}
	})
}

type countingProvider struct {
	table *adapter.ExchangeRateTable
	err   error
	calls int
}

func (p *countingProvider) Latest(_ context.Context, _ []string) (*adapter.ExchangeRateTable, error) {
	p.calls++
	return p.table, p.err
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()
	table := &adapter.ExchangeRateTable{
		EffectiveDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Rates: []adapter.ExchangeRate{
			{Code: "USD", Currency: "dolar amerykański", Mid: decimal.RequireFromString("3.9321")},
		},
	}

	newCache := func(t *testing.T, next adapter.ExchangeRateProvider) (*miniredis.Miniredis, adapter.ExchangeRateProvider) {
		t.Helper()
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return mr, NewCachedProvider(next, client, time.Hour)
	}

	t.Run("second call is served from cache", func(t *testing.T) {
		upstream := &countingProvider{table: table}
		_, provider := newCache(t, upstream)

		for i := 0; i < 2; i++ {
			got, err := provider.Latest(ctx, []string{"USD"})
			if err != nil {
				t.Fatalf("Latest() error = %v", err)
			}
			if len(got.Rates) != 1 || !got.Rates[0].Mid.Equal(table.Rates[0].Mid) {
				t.Errorf("Latest() = %+v", got)
			}
			if !got.EffectiveDate.Equal(table.EffectiveDate) {
				t.Errorf("EffectiveDate = %v", got.EffectiveDate)
			}
		}
		if upstream.calls != 1 {
			t.Errorf("upstream calls = %d, want 1", upstream.calls)
		}
	})

	t.Run("expired entry is refreshed", func(t *testing.T) {
		upstream := &countingProvider{table: table}
		mr, provider := newCache(t, upstream)

		if _, err := provider.Latest(ctx, []string{"USD"}); err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		mr.FastForward(2 * time.Hour)
		if _, err := provider.Latest(ctx, []string{"USD"}); err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if upstream.calls != 2 {
			t.Errorf("upstream calls = %d, want 2", upstream.calls)
		}
	})

	t.Run("upstream error is not cached", func(t *testing.T) {
		upstream := &countingProvider{err: errors.New("down")}
		mr, provider := newCache(t, upstream)

		if _, err := provider.Latest(ctx, []string{"USD"}); err == nil {
			t.Fatal("expected error")
		}
		if len(mr.Keys()) != 0 {
			t.Errorf("cache keys = %v, want none", mr.Keys())
		}
	})

	t.Run("redis outage falls through to upstream", func(t *testing.T) {
		upstream := &countingProvider{table: table}
		mr, provider := newCache(t, upstream)
		mr.Close()

		got, err := provider.Latest(ctx, []string{"USD"})
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if len(got.Rates) != 1 {
			t.Errorf("Latest() = %+v", got)
		}
	})
}
