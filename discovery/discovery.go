package discovery

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mist-tools/misttopo/observability"
	"github.com/mist-tools/misttopo/record"
	"github.com/mist-tools/misttopo/topology"
)

// Client is the subset of the Mist API the orchestrator needs.
// *mist.Client satisfies it; tests substitute a fake.
type Client interface {
	OrgID() string
	OrgInventory(ctx context.Context) ([]record.Value, error)
	OrgSites(ctx context.Context) ([]record.Value, error)
	SiteDeviceStats(ctx context.Context, siteID string) ([]record.Value, error)
	SiteDiscoveredSwitches(ctx context.Context, siteID string) ([]record.Value, error)
}

// Discoverer runs topology discovery against one organization.
type Discoverer struct {
	client            Client
	logger            observability.Logger
	includeDiscovered bool
	now               func() time.Time
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithLogger sets the logger used for per-site progress and failures.
func WithLogger(logger observability.Logger) Option {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDiscoveredSwitches enables the extra per-site pass that collects
// switches the controller sees but does not manage. It costs one additional
// API call per site.
func WithDiscoveredSwitches() Option {
	return func(d *Discoverer) {
		d.includeDiscovered = true
	}
}

// New creates a Discoverer for the given client.
func New(client Client, opts ...Option) *Discoverer {
	d := &Discoverer{
		client: client,
		logger: observability.NoopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run performs one full discovery: organization inventory, site metadata,
// per-site device statistics, assembly. It returns the assembled topology
// with APICallsUsed set to the number of API calls the run issued,
// including failed ones.
func (d *Discoverer) Run(ctx context.Context) (*topology.Topology, error) {
	orgID := d.client.OrgID()
	calls := 0

	d.logger.Info("starting topology discovery", observability.Field{Key: "org_id", Value: orgID})

	inventory, err := d.client.OrgInventory(ctx)
	calls++
	if err != nil {
		return nil, errors.Wrap(err, "inventory retrieval failed")
	}
	d.logger.Info("retrieved organization inventory",
		observability.Field{Key: "devices", Value: len(inventory)})

	siteIDs := collectSiteIDs(inventory)

	sites := make(map[string]topology.SiteMeta, len(siteIDs))
	siteRecords, err := d.client.OrgSites(ctx)
	calls++
	if err != nil {
		// Site names and addresses are cosmetic; synthesized metadata
		// keeps the run going.
		d.logger.Warn("site listing failed, synthesizing site metadata",
			observability.Field{Key: "error", Value: err.Error()})
	} else {
		for _, rec := range siteRecords {
			id, ok := rec.Get("id").StrOK()
			if !ok || id == "" {
				continue
			}
			sites[id] = topology.SiteMeta{
				SiteID:      id,
				SiteName:    rec.Get("name").Str("Site-" + shortID(id)),
				Address:     rec.Get("address").Str("Unknown"),
				Timezone:    rec.Get("timezone").Str("Unknown"),
				CountryCode: rec.Get("country_code").Str("Unknown"),
			}
		}
	}

	var stats []record.Value
	for _, siteID := range siteIDs {
		siteStats, err := d.client.SiteDeviceStats(ctx, siteID)
		calls++
		if err != nil {
			d.logger.Warn("device statistics failed for site, skipping",
				observability.Field{Key: "site_id", Value: siteID},
				observability.Field{Key: "error", Value: err.Error()})
			continue
		}
		d.logger.Debug("retrieved site device statistics",
			observability.Field{Key: "site_id", Value: siteID},
			observability.Field{Key: "devices", Value: len(siteStats)})
		stats = append(stats, siteStats...)
	}

	top := topology.Assemble(topology.Input{
		OrgID:     orgID,
		Inventory: inventory,
		Stats:     stats,
		Sites:     sites,
		Timestamp: d.now().Unix(),
	})

	if d.includeDiscovered {
		discovered := make(map[string][]record.Value)
		for _, siteID := range siteIDs {
			switches, err := d.client.SiteDiscoveredSwitches(ctx, siteID)
			calls++
			if err != nil {
				d.logger.Warn("discovered switches failed for site, skipping",
					observability.Field{Key: "site_id", Value: siteID},
					observability.Field{Key: "error", Value: err.Error()})
				continue
			}
			if len(switches) > 0 {
				discovered[siteID] = switches
			}
		}
		if len(discovered) > 0 {
			top.DiscoveredSwitches = discovered
		}
	}

	top.APICallsUsed = calls

	d.logger.Info("topology discovery complete",
		observability.Field{Key: "sites", Value: top.Statistics.TotalSites},
		observability.Field{Key: "devices", Value: top.Statistics.TotalDevices},
		observability.Field{Key: "links", Value: top.Statistics.UniqueLinks},
		observability.Field{Key: "api_calls", Value: calls})

	return top, nil
}

// collectSiteIDs returns the unique real site ids in the inventory, in first
// occurrence order. Devices without a site are kept in the topology under
// the unassigned bucket but have no statistics endpoint to query.
func collectSiteIDs(inventory []record.Value) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, rec := range inventory {
		id := rec.Get("site_id").Str("")
		if id == "" || id == topology.UnassignedSite {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
