package mist_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mist-tools/misttopo/internal/testutil"
	"github.com/mist-tools/misttopo/mist"
	"github.com/mist-tools/misttopo/observability"
)

const inventoryBody = `[
	{"mac":"5c5b35000001","name":"core-sw","serial":"JN123","model":"EX2300","type":"switch","site_id":"site-1"},
	{"mac":"d420b0000001","name":"ap-lobby","serial":"A123","model":"AP34","type":"ap","site_id":"site-1"}
]`

func newTestClient(t *testing.T, baseURL string, mutate func(*mist.ClientConfig)) *mist.Client {
	t.Helper()

	cfg := &mist.ClientConfig{
		Token:   "test-token",
		OrgID:   "org-1",
		BaseURL: baseURL,
	}
	if mutate != nil {
		mutate(cfg)
	}

	client, err := mist.NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	_, err := mist.NewClient(nil)
	assert.Error(t, err)

	_, err = mist.NewClient(&mist.ClientConfig{OrgID: "org-1"})
	assert.Error(t, err)

	_, err = mist.NewClient(&mist.ClientConfig{Token: "t"})
	assert.Error(t, err)
}

func TestOrgInventory(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/api/v1/orgs/org-1/inventory", "test-token", inventoryBody, http.StatusOK)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	devices, err := client.OrgInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "core-sw", devices[0].Get("name").Str(""))
	assert.Equal(t, "ap", devices[1].Get("type").Str(""))
}

func TestOrgSites(t *testing.T) {
	t.Parallel()

	body := `[{"id":"site-1","name":"HQ","address":"1 Main St","timezone":"Europe/Madrid","country_code":"ES"}]`
	server := testutil.NewMockServer(t, "/api/v1/orgs/org-1/sites", "test-token", body, http.StatusOK)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	sites, err := client.OrgSites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "HQ", sites[0].Get("name").Str(""))
}

func TestSiteDeviceStats(t *testing.T) {
	t.Parallel()

	body := `[{"mac":"5c5b35000001","status":"connected","lldp_stat":[{"chassis_id":"d420b0000001","port_id":"eth0"}]}]`
	server := testutil.NewMockServer(t, "/api/v1/sites/site-1/stats/devices", "test-token", body, http.StatusOK)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	stats, err := client.SiteDeviceStats(context.Background(), "site-1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "connected", stats[0].Get("status").Str(""))
}

func TestSearchDevicesUnwrapsResultsEnvelope(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerMulti(t, map[string]http.HandlerFunc{
		"/api/v1/orgs/org-1/devices/search": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "switch", r.URL.Query().Get("type"))
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"results":[{"mac":"5c5b35000001","type":"switch"}],"total":1}`))
		},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	devices, err := client.SearchDevices(context.Background(), "switch", 50)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "switch", devices[0].Get("type").Str(""))
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerSequence(t, []struct {
		Body       string
		StatusCode int
	}{
		{Body: `{"detail":"try later"}`, StatusCode: http.StatusServiceUnavailable},
		{Body: `[]`, StatusCode: http.StatusOK},
	})
	defer server.Close()

	counter := observability.NewCallCounter()
	client := newTestClient(t, server.URL, func(cfg *mist.ClientConfig) {
		cfg.RetryWaitTime = time.Millisecond
		cfg.Metrics = counter
	})

	devices, err := client.OrgInventory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, devices)

	// One logical request, one retry underneath it.
	assert.Equal(t, 1, counter.Requests())
	assert.Equal(t, 1, counter.Retries())
}

func TestClientSurfacesAuthErrors(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/api/v1/orgs/org-1/inventory", "", `{"detail":"Invalid token"}`, http.StatusUnauthorized)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.OrgInventory(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}
