package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooTargetMeanPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v10/finance/quoteSummary/AAPL")
		assert.Equal(t, "financialData", r.URL.Query().Get("modules"))
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"financialData":{"targetMeanPrice":{"raw":231.5,"fmt":"231.50"}}}],"error":null}}`))
	}))
	defer srv.Close()

	y := NewYahooTargets(5*time.Second, "")
	y.BaseURL = srv.URL

	target, err := y.TargetMeanPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 231.5, target)
}

func TestYahooTargetMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"financialData":{}}],"error":null}}`))
	}))
	defer srv.Close()

	y := NewYahooTargets(5*time.Second, "")
	y.BaseURL = srv.URL

	_, err := y.TargetMeanPrice(context.Background(), "NOTARGET")
	assert.Error(t, err)
}

func TestStaticTargets(t *testing.T) {
	s := &StaticTargets{Targets: map[string]float64{"SAP.DE": 250}}
	target, err := s.TargetMeanPrice(context.Background(), "SAP.DE")
	require.NoError(t, err)
	assert.Equal(t, 250.0, target)

	_, err = s.TargetMeanPrice(context.Background(), "UNKNOWN")
	assert.Error(t, err)
}
