package topology

import (
	"slices"

	"github.com/mist-tools/misttopo/record"
)

// Device type strings as reported by the Mist inventory endpoint.
const (
	TypeSwitch  = "switch"
	TypeAP      = "ap"
	TypeGateway = "gateway"
	TypeUnknown = "unknown"
)

// UnassignedSite is the sentinel site id for inventory devices that are not
// assigned to any site. They are kept in the topology but excluded from
// per-site statistics queries.
const UnassignedSite = "unassigned"

// SiteMeta is display metadata for one site, taken from the organization
// sites listing or synthesized when the listing omits the site.
type SiteMeta struct {
	SiteID      string
	SiteName    string
	Address     string
	Timezone    string
	CountryCode string
}

// SynthesizeSiteMeta builds fallback metadata for a site id the controller
// did not resolve: "Site-" plus the first 8 characters of the id, with
// "Unknown" for everything else.
func SynthesizeSiteMeta(siteID string) SiteMeta {
	short := siteID
	if len(short) > 8 {
		short = short[:8]
	}
	return SiteMeta{
		SiteID:      siteID,
		SiteName:    "Site-" + short,
		Address:     "Unknown",
		Timezone:    "Unknown",
		CountryCode: "Unknown",
	}
}

// Connection is one observed attachment point on a device: either a port
// that is up (from port statistics) or an LLDP neighbor announcement. The
// two sources are not deduplicated against each other; a physical link
// reported by both yields two Connection records.
type Connection struct {
	Port                string `json:"port"`
	Status              string `json:"status"`
	Speed               *int64 `json:"speed,omitempty"`
	RxBytes             *int64 `json:"rx_bytes,omitempty"`
	TxBytes             *int64 `json:"tx_bytes,omitempty"`
	NeighborMac         string `json:"neighbor_mac,omitempty"`
	NeighborPort        string `json:"neighbor_port,omitempty"`
	NeighborSystem      string `json:"neighbor_system,omitempty"`
	NeighborDescription string `json:"neighbor_description,omitempty"`
	Protocol            string `json:"protocol,omitempty"`
}

// Device merges one inventory record with its statistics record, matched by
// MAC. Status, Uptime and Version are pointers so that a device the stats
// endpoint never reported is distinguishable from one that reported zero
// values.
type Device struct {
	Name        string        `json:"name"`
	Mac         string        `json:"mac"`
	Serial      string        `json:"serial"`
	Model       string        `json:"model"`
	Type        string        `json:"type"`
	SiteID      string        `json:"site_id"`
	Status      *string       `json:"status,omitempty"`
	Uptime      *int64        `json:"uptime,omitempty"`
	Version     *string       `json:"version,omitempty"`
	Connections []*Connection `json:"connections,omitempty"`
}

// Site groups the devices of one site in inventory order. DeviceCount
// always equals len(Devices); the assembler updates both together.
type Site struct {
	SiteID      string    `json:"site_id"`
	SiteName    string    `json:"site_name"`
	Address     string    `json:"address"`
	Timezone    string    `json:"timezone"`
	CountryCode string    `json:"country_code"`
	Devices     []*Device `json:"devices"`
	DeviceCount int       `json:"device_count"`
}

// Link is one directed neighbor observation derived from a Connection with
// a known target MAC. Two devices reporting each other produce two Links
// that collapse to a single unique link in the statistics.
type Link struct {
	SourceMac  string `json:"source_mac"`
	SourcePort string `json:"source_port"`
	SourceName string `json:"source_name"`
	TargetMac  string `json:"target_mac"`
	TargetPort string `json:"target_port"`
	LinkStatus string `json:"link_status"`
	SpeedMbps  *int64 `json:"speed_mbps,omitempty"`
	Protocol   string `json:"protocol"`
}

// Statistics are scalar counts derived from an assembled Topology.
type Statistics struct {
	TotalSites             int `json:"total_sites"`
	TotalDevices           int `json:"total_devices"`
	TotalSwitches          int `json:"total_switches"`
	TotalAPs               int `json:"total_aps"`
	TotalGateways          int `json:"total_gateways"`
	TotalConnections       int `json:"total_connections"`
	UniqueLinks            int `json:"unique_links"`
	DevicesWithConnections int `json:"devices_with_connections"`
}

// Topology is the root aggregate produced by one discovery run. The JSON
// field names are contract: exporters and downstream report tooling key
// into them directly.
type Topology struct {
	OrganizationID     string                    `json:"organization_id"`
	TotalDevices       int                       `json:"total_devices"`
	Sites              map[string]*Site          `json:"sites"`
	DevicesByType      map[string][]*Device      `json:"devices_by_type"`
	TopologyLinks      []*Link                   `json:"topology_links"`
	DeviceConnections  map[string][]*Connection  `json:"device_connections"`
	Timestamp          int64                     `json:"timestamp"`
	Statistics         *Statistics               `json:"statistics"`
	DiscoveredSwitches map[string][]record.Value `json:"discovered_switches,omitempty"`
	APICallsUsed       int                       `json:"api_calls_used"`

	// siteOrder preserves first-occurrence order of sites in the
	// inventory; Go maps do not. Exporters iterate in this order so
	// repeated runs over identical input produce identical output.
	siteOrder []string
}

// SiteIDs returns site ids in the order they were first seen in inventory.
func (t *Topology) SiteIDs() []string {
	return slices.Clone(t.siteOrder)
}
