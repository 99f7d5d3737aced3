package export

import (
	"io"
	"time"

	"github.com/mist-tools/misttopo/topology"
)

// Hierarchy is the site-by-site tree view of a topology, with devices
// bucketed by type and links classified by whether both endpoints live in
// the same site.
type Hierarchy struct {
	Organization Organization `json:"organization"`
}

// Organization is the hierarchy root.
type Organization struct {
	OrganizationID string           `json:"organization_id"`
	DiscoveryInfo  DiscoveryInfo    `json:"discovery_info"`
	Sites          []*SiteHierarchy `json:"sites"`
}

// DiscoveryInfo records when and how the topology was collected.
type DiscoveryInfo struct {
	Timestamp     int64  `json:"timestamp"`
	DiscoveryTime string `json:"discovery_time"`
	APICallsUsed  int    `json:"api_calls_used"`
}

// SiteHierarchy is one site's slice of the tree.
type SiteHierarchy struct {
	SiteID      string          `json:"site_id"`
	SiteName    string          `json:"site_name"`
	DeviceCount int             `json:"device_count"`
	DeviceTypes DeviceTypes     `json:"device_types"`
	Connections SiteConnections `json:"connections"`
}

// DeviceTypes buckets a site's devices.
type DeviceTypes struct {
	Switches     []*DeviceInfo `json:"switches"`
	AccessPoints []*DeviceInfo `json:"access_points"`
	Gateways     []*DeviceInfo `json:"gateways"`
	Other        []*DeviceInfo `json:"other"`
}

// SiteConnections classifies a site's links. Internal links have both
// endpoints in the site; external links have exactly one.
type SiteConnections struct {
	InternalLinks      []*LinkInfo          `json:"internal_links"`
	ExternalLinks      []*LinkInfo          `json:"external_links"`
	UnconnectedDevices []*UnconnectedDevice `json:"unconnected_devices"`
}

// DeviceInfo is the hierarchy view of one device.
type DeviceInfo struct {
	Name        string            `json:"name"`
	Mac         string            `json:"mac"`
	Model       string            `json:"model"`
	Type        string            `json:"type"`
	Status      string            `json:"status"`
	Serial      string            `json:"serial"`
	Connections []*ConnectionInfo `json:"connections"`
}

// ConnectionInfo is the hierarchy view of one attachment observation.
type ConnectionInfo struct {
	LocalPort      string `json:"local_port"`
	NeighborMac    string `json:"neighbor_mac"`
	NeighborPort   string `json:"neighbor_port"`
	NeighborSystem string `json:"neighbor_system"`
	Status         string `json:"status"`
	Protocol       string `json:"protocol"`
}

// LinkInfo is the hierarchy view of one directed link.
type LinkInfo struct {
	SourceDevice string `json:"source_device"`
	SourceMac    string `json:"source_mac"`
	SourcePort   string `json:"source_port"`
	TargetMac    string `json:"target_mac"`
	TargetPort   string `json:"target_port"`
	Status       string `json:"status"`
	SpeedMbps    *int64 `json:"speed_mbps"`
	Protocol     string `json:"protocol"`
}

// UnconnectedDevice names a device with no observed connections.
type UnconnectedDevice struct {
	Name string `json:"name"`
	Mac  string `json:"mac"`
	Type string `json:"type"`
}

// BuildHierarchy derives the site tree from an assembled topology. Sites
// appear in inventory first-occurrence order.
func BuildHierarchy(top *topology.Topology) *Hierarchy {
	org := Organization{
		OrganizationID: top.OrganizationID,
		DiscoveryInfo: DiscoveryInfo{
			Timestamp:     top.Timestamp,
			DiscoveryTime: time.Unix(top.Timestamp, 0).Format(timeLayout),
			APICallsUsed:  top.APICallsUsed,
		},
		Sites: []*SiteHierarchy{},
	}

	for _, siteID := range top.SiteIDs() {
		site := top.Sites[siteID]
		org.Sites = append(org.Sites, buildSiteHierarchy(top, site))
	}

	return &Hierarchy{Organization: org}
}

func buildSiteHierarchy(top *topology.Topology, site *topology.Site) *SiteHierarchy {
	sh := &SiteHierarchy{
		SiteID:      site.SiteID,
		SiteName:    site.SiteName,
		DeviceCount: site.DeviceCount,
		DeviceTypes: DeviceTypes{
			Switches:     []*DeviceInfo{},
			AccessPoints: []*DeviceInfo{},
			Gateways:     []*DeviceInfo{},
			Other:        []*DeviceInfo{},
		},
		Connections: SiteConnections{
			InternalLinks:      []*LinkInfo{},
			ExternalLinks:      []*LinkInfo{},
			UnconnectedDevices: []*UnconnectedDevice{},
		},
	}

	siteMacs := make(map[string]struct{}, len(site.Devices))
	for _, dev := range site.Devices {
		siteMacs[dev.Mac] = struct{}{}
	}

	for _, dev := range site.Devices {
		info := &DeviceInfo{
			Name:        dev.Name,
			Mac:         dev.Mac,
			Model:       dev.Model,
			Type:        dev.Type,
			Status:      deviceStatus(dev),
			Serial:      dev.Serial,
			Connections: []*ConnectionInfo{},
		}

		for _, conn := range top.DeviceConnections[dev.Mac] {
			info.Connections = append(info.Connections, &ConnectionInfo{
				LocalPort:      conn.Port,
				NeighborMac:    orUnknown(conn.NeighborMac),
				NeighborPort:   orUnknown(conn.NeighborPort),
				NeighborSystem: orUnknown(conn.NeighborSystem),
				Status:         conn.Status,
				Protocol:       orUnknown(conn.Protocol),
			})
		}

		switch dev.Type {
		case topology.TypeSwitch:
			sh.DeviceTypes.Switches = append(sh.DeviceTypes.Switches, info)
		case topology.TypeAP:
			sh.DeviceTypes.AccessPoints = append(sh.DeviceTypes.AccessPoints, info)
		case topology.TypeGateway:
			sh.DeviceTypes.Gateways = append(sh.DeviceTypes.Gateways, info)
		default:
			sh.DeviceTypes.Other = append(sh.DeviceTypes.Other, info)
		}

		if len(info.Connections) == 0 {
			sh.Connections.UnconnectedDevices = append(sh.Connections.UnconnectedDevices, &UnconnectedDevice{
				Name: info.Name,
				Mac:  info.Mac,
				Type: info.Type,
			})
		}
	}

	for _, link := range top.TopologyLinks {
		_, sourceIn := siteMacs[link.SourceMac]
		_, targetIn := siteMacs[link.TargetMac]
		if !sourceIn && !targetIn {
			continue
		}

		info := &LinkInfo{
			SourceDevice: link.SourceName,
			SourceMac:    link.SourceMac,
			SourcePort:   link.SourcePort,
			TargetMac:    link.TargetMac,
			TargetPort:   link.TargetPort,
			Status:       link.LinkStatus,
			SpeedMbps:    link.SpeedMbps,
			Protocol:     link.Protocol,
		}

		if sourceIn && targetIn {
			sh.Connections.InternalLinks = append(sh.Connections.InternalLinks, info)
		} else {
			sh.Connections.ExternalLinks = append(sh.Connections.ExternalLinks, info)
		}
	}

	return sh
}

// WriteHierarchy writes the site tree as indented JSON.
func WriteHierarchy(w io.Writer, top *topology.Topology) error {
	return writeJSON(w, BuildHierarchy(top), "failed to write topology hierarchy")
}

func deviceStatus(dev *topology.Device) string {
	if dev.Status != nil {
		return *dev.Status
	}
	return "unknown"
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
