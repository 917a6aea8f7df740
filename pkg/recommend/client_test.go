package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbud/pkg/ledger"
)

const stubResponse = `{
	"Food": 1000,
	"Electricity": 500,
	"Transportation": 300,
	"Paid_services_subscription": 200,
	"Rent_EMI": 2000,
	"Insurance": 150,
	"Others": 100
}`

func TestRecommendMapsUpstreamFields(t *testing.T) {
	var gotBody map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recomended", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stubResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Recommend(context.Background(), 50000, 10000)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, gotBody["income"])
	assert.Equal(t, 10000.0, gotBody["savings"])

	want := ledger.Ledger{
		{Category: "Food", Budget: 1000},
		{Category: "Electricity", Budget: 500},
		{Category: "Transport", Budget: 300},
		{Category: "Subscription", Budget: 200},
		{Category: "Rent", Budget: 2000},
		{Category: "Medical", Budget: 150},
		{Category: "Others", Budget: 100},
	}
	assert.Equal(t, want, got)
}

func TestRecommendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"validation error"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Recommend(context.Background(), 50000, 10000)
	assert.ErrorIs(t, err, ErrRecommendation)
}

func TestRecommendMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Recommend(context.Background(), 50000, 10000)
	assert.ErrorIs(t, err, ErrRecommendation)
}

func TestRecommendMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Food": 1000}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Recommend(context.Background(), 50000, 10000)
	require.ErrorIs(t, err, ErrRecommendation)
	assert.Contains(t, err.Error(), "missing field")
}

func TestRecommendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(srv.URL).Recommend(context.Background(), 50000, 10000)
	assert.ErrorIs(t, err, ErrRecommendation)
}
