package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldbook/internal/app/ledger"
)

func TestUSDFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"rates":{"USD":0.73}}`))
	}))
	defer server.Close()

	f := &USDFetcher{Client: server.Client(), BaseURL: server.URL}
	rate, source, err := f.Fetch(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 0.73, rate, 1e-9)
	assert.Equal(t, "exchangerate.host", source)
}

func TestUSDFetcherReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	f := &USDFetcher{Client: server.Client(), BaseURL: server.URL}
	_, _, err := f.Fetch(context.Background())

	assert.Error(t, err)
}

func TestUSDFetcherBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := &USDFetcher{Client: server.Client(), BaseURL: server.URL}
	_, _, err := f.Fetch(context.Background())

	assert.Error(t, err)
}

func TestIRRFetcher(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"rates":{"USD":0.0000185}}`))
	}))
	defer server.Close()

	f := &IRRFetcher{Client: server.Client(), BaseURL: server.URL}
	rate, source, err := f.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "priceto.day", source)
	assert.InDelta(t, (1/0.0000185)*ledger.FallbackUSDPerCAD, rate, 1e-6)
	assert.Contains(t, gotUserAgent, "Mozilla")
}

func TestIRRFetcherMissingRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{}}`))
	}))
	defer server.Close()

	f := &IRRFetcher{Client: server.Client(), BaseURL: server.URL}
	_, _, err := f.Fetch(context.Background())

	assert.Error(t, err)
}

func TestIRRFetcherMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>blocked</html>`))
	}))
	defer server.Close()

	f := &IRRFetcher{Client: server.Client(), BaseURL: server.URL}
	_, _, err := f.Fetch(context.Background())

	assert.Error(t, err)
}
