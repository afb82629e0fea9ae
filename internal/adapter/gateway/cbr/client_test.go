package cbr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gotransfers/internal/domain"
)

const sampleFeed = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="02.02.2024" name="Foreign Currency Market">
    <Valute ID="R01235">
        <NumCode>840</NumCode>
        <CharCode>USD</CharCode>
        <Nominal>1</Nominal>
        <Name>Доллар США</Name>
        <Value>90,3743</Value>
    </Valute>
    <Valute ID="R01090B">
        <NumCode>933</NumCode>
        <CharCode>BYN</CharCode>
        <Nominal>1</Nominal>
        <Name>Белорусский рубль</Name>
        <Value>28,2591</Value>
    </Valute>
</ValCurs>`

func TestClient_Rate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 2*time.Second, nil)

	usd, err := client.Rate(context.Background(), "840")
	require.NoError(t, err)
	assert.Equal(t, "90.3743", usd.String())

	byn, err := client.Rate(context.Background(), "933")
	require.NoError(t, err)
	assert.Equal(t, "28.2591", byn.String())
}

func TestClient_Rate_UnknownCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 2*time.Second, nil)
	_, err := client.Rate(context.Background(), "978")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestClient_Rate_FeedDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 2*time.Second, nil)
	_, err := client.Rate(context.Background(), "840")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestParseRate_MalformedFeed(t *testing.T) {
	_, err := parseRate([]byte("not xml at all <"), "840")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestParseRate_BadValue(t *testing.T) {
	feed := `<ValCurs><Valute><NumCode>840</NumCode><Value>ninety</Value></Valute></ValCurs>`
	_, err := parseRate([]byte(feed), "840")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}
