package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mist-tools/misttopo/internal/response"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"site-1","name":"HQ"}`))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL) //nolint:noctx // test request
	v, err := response.Decode(resp, err, "failed to get site")
	require.NoError(t, err)
	assert.Equal(t, "HQ", v.Get("name").Str(""))
}

func TestDecodeNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	resp, err := http.Get(server.URL) //nolint:noctx // test request
	_, err = response.Decode(resp, err, "failed to get site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestDecodePassesThroughTransportError(t *testing.T) {
	t.Parallel()

	resp, err := http.Get("http://127.0.0.1:0") //nolint:noctx // intentionally unreachable
	_, err = response.Decode(resp, err, "failed to reach API")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach API")
}

func TestDecodeListToleratesNonList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"detail":"not a list"}`))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL) //nolint:noctx // test request
	items, err := response.DecodeList(resp, err, "failed to list")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"mac":"aa"},{"mac":"bb"}]`))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL) //nolint:noctx // test request
	items, err := response.DecodeList(resp, err, "failed to list")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "bb", items[1].Get("mac").Str(""))
}
