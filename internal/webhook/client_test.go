package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Deliver_Success(t *testing.T) {
	var calls atomic.Int32
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.Deliver(context.Background(), map[string]any{"name": "Ada", "totalPrice": 25.5})

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Ada", gotBody["name"])
	assert.Equal(t, 25.5, gotBody["totalPrice"])
}

func TestClient_Deliver_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusMovedPermanently, http.StatusBadRequest, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				// no Location header, so the 301 is returned rather than followed
				w.WriteHeader(status)
			}))
			defer server.Close()

			err := NewClient(server.URL, time.Second).Deliver(context.Background(), struct{}{})

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, status, statusErr.StatusCode)
			assert.Equal(t, int32(1), calls.Load(), "no retries")
		})
	}
}

func TestClient_Deliver_NotConfigured(t *testing.T) {
	err := NewClient("", time.Second).Deliver(context.Background(), struct{}{})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Deliver_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url, time.Second).Deliver(context.Background(), struct{}{})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotConfigured))
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClient_Deliver_HonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewClient(server.URL, 5*time.Second).Deliver(ctx, struct{}{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Deliver_UnencodablePayload(t *testing.T) {
	err := NewClient("http://example.invalid", time.Second).Deliver(context.Background(), make(chan int))

	assert.ErrorContains(t, err, "failed to encode payload")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_Deliver_UsesSuppliedHTTPClient(t *testing.T) {
	var got *http.Request
	httpClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r
		return &http.Response{StatusCode: http.StatusAccepted, Body: http.NoBody, Header: http.Header{}}, nil
	})}

	err := NewClientWithHTTP("https://hooks.example.com/orders", httpClient).Deliver(context.Background(), struct{}{})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hooks.example.com", got.URL.Host)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
}
