package goodreturns

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/aurum/internal/models"
)

const samplePage = `
<html><body>
<h2>Gold Rate in India</h2>
<table>
  <tr><td>24K Gold /g</td><td>₹7,245</td></tr>
  <tr><td>22K Gold /g</td><td>₹6,641</td></tr>
  <tr><td>18K Gold /g</td><td>₹5,434.50</td></tr>
</table>
</body></html>`

func TestFetchTodayRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	snapshot, err := client.FetchTodayRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7245.0, snapshot.PerGram[24])
	assert.Equal(t, 6641.0, snapshot.PerGram[22])
	assert.Equal(t, 5434.50, snapshot.PerGram[18])
	assert.Equal(t, models.ProvenanceLive, snapshot.Provenance)
	assert.NotEmpty(t, snapshot.Date)

	// 14K and 9K are not on the page — left for normalization
	_, ok := snapshot.PerGram[14]
	assert.False(t, ok)
}

func TestFetchTodayRates_No24K(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>no rates today</body></html>"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.FetchTodayRates(context.Background())
	assert.Error(t, err)
}

func TestFetchTodayRates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.FetchTodayRates(context.Background())
	assert.Error(t, err)
}

func TestParseINR(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"₹7,245", 7245},
		{"7,245.50", 7245.50},
		{"₹ 6641", 6641},
	}
	for _, tt := range tests {
		got, err := parseINR(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := parseINR("—")
	assert.Error(t, err)
}
