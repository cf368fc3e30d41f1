package nango

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenSource(t *testing.T) {
	broker, _ := newBroker(t, http.StatusOK, fullPayload)

	gotAuth := make(chan string, 1)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")
	}))
	t.Cleanup(api.Close)

	ctx := context.Background()
	ts := newTestClient(broker.URL, "").TokenSource(ctx, testConnection)
	issued := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ts.(*connectionTokenSource).now = func() time.Time { return issued }

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, issued.Add(2*time.Hour), tok.Expiry)

	resp, err := oauth2.NewClient(ctx, ts).Get(api.URL + "/2/users/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer abc123", <-gotAuth)
}

func TestTokenSource_PropagatesFetchError(t *testing.T) {
	broker, _ := newBroker(t, http.StatusUnauthorized, "")

	_, err := newTestClient(broker.URL, "").TokenSource(context.Background(), testConnection).Token()

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
}
