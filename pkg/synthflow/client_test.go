package synthflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedBody = `{
	"status": "ok",
	"response": {
		"calls": [
			{"call_id": "c1", "phone_number_from": "+15551234567", "start_time": 1713600000000, "transcript": "hello"},
			{"call_id": "c2", "phone_number_from": "+15550000001", "start_time": 1713600000, "transcript": ""}
		]
	}
}`

func TestListCalls_WrappedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/calls", r.URL.Path)
		assert.Equal(t, "tenant-1", r.URL.Query().Get("model_id"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(wrappedBody))
	}))
	defer srv.Close()

	calls, err := NewClient(srv.URL, "test-key").ListCalls(context.Background(), "tenant-1", 50)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "c1", calls[0].CallID)
	assert.Equal(t, "+15551234567", calls[0].PhoneNumberFrom)
	assert.Equal(t, int64(1713600000000), calls[0].StartTime)
}

func TestListCalls_FlatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"calls": [{"call_id": "c1"}]}`))
	}))
	defer srv.Close()

	calls, err := NewClient(srv.URL, "").ListCalls(context.Background(), "tenant-1", 25)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "c1", calls[0].CallID)
}

func TestListCalls_BareArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"call_id": "c1"}, {"call_id": "c2"}]`))
	}))
	defer srv.Close()

	calls, err := NewClient(srv.URL, "").ListCalls(context.Background(), "tenant-1", 25)
	require.NoError(t, err)
	assert.Len(t, calls, 2)
}

func TestListCalls_DefaultLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"calls": []}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").ListCalls(context.Background(), "tenant-1", 0)
	require.NoError(t, err)
}

func TestListCalls_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").ListCalls(context.Background(), "tenant-1", 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestListCalls_UnrecognizedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`"just a string"`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").ListCalls(context.Background(), "tenant-1", 25)
	assert.Error(t, err)
}
