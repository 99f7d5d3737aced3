package topology

import (
	"github.com/mist-tools/misttopo/record"
)

// Connection status values.
const (
	statusUp         = "up"
	statusDiscovered = "discovered"
)

// protocolLLDP tags connections sourced from neighbor-discovery data.
const protocolLLDP = "LLDP"

// Input carries everything one assembly pass consumes. Timestamp is
// explicit so that assembly stays a pure function of its input; the
// discovery orchestrator passes wall-clock time.
type Input struct {
	OrgID     string
	Inventory []record.Value
	Stats     []record.Value
	Sites     map[string]SiteMeta
	Timestamp int64
}

// Assemble builds a complete Topology from raw bulk records in a single
// linear pass. It never fails: missing fields resolve to defaults,
// malformed records behave as empty ones, and absent statistics simply
// leave a device without runtime attributes.
func Assemble(in Input) *Topology {
	// Last write wins when duplicate MACs appear across site responses.
	statsByMac := make(map[string]record.Value, len(in.Stats))
	for _, stat := range in.Stats {
		if mac, ok := stat.Get("mac").StrOK(); ok && mac != "" {
			statsByMac[mac] = stat
		}
	}

	t := &Topology{
		OrganizationID: in.OrgID,
		TotalDevices:   len(in.Inventory),
		Sites:          make(map[string]*Site),
		DevicesByType: map[string][]*Device{
			TypeSwitch:  {},
			TypeAP:      {},
			TypeGateway: {},
		},
		TopologyLinks:     []*Link{},
		DeviceConnections: make(map[string][]*Connection),
		Timestamp:         in.Timestamp,
	}

	for _, inv := range in.Inventory {
		siteID := inv.Get("site_id").Str(UnassignedSite)
		devType := inv.Get("type").Str(TypeUnknown)
		mac := inv.Get("mac").Str("")

		site := t.ensureSite(siteID, in.Sites)

		dev := &Device{
			Name:   inv.Get("name").Str("N/A"),
			Mac:    mac,
			Serial: inv.Get("serial").Str("N/A"),
			Model:  inv.Get("model").Str("N/A"),
			Type:   devType,
			SiteID: siteID,
		}

		if stat, ok := statsByMac[mac]; ok {
			mergeStats(dev, stat)

			if conns := extractConnections(stat); len(conns) > 0 {
				dev.Connections = conns
				t.DeviceConnections[mac] = conns

				for _, conn := range conns {
					if conn.NeighborMac == "" {
						continue
					}
					t.TopologyLinks = append(t.TopologyLinks, linkFromConnection(dev, conn))
				}
			}
		}

		// Devices and DeviceCount move together; nothing else touches them.
		site.Devices = append(site.Devices, dev)
		site.DeviceCount++

		if _, known := t.DevicesByType[devType]; known {
			t.DevicesByType[devType] = append(t.DevicesByType[devType], dev)
		}
	}

	t.Statistics = ComputeStatistics(t)

	return t
}

// ensureSite resolves or lazily creates the Site entry for siteID,
// synthesizing metadata when the organization sites listing did not
// include it. First occurrence order is retained in siteOrder.
func (t *Topology) ensureSite(siteID string, meta map[string]SiteMeta) *Site {
	if site, ok := t.Sites[siteID]; ok {
		return site
	}

	m, ok := meta[siteID]
	if !ok {
		m = SynthesizeSiteMeta(siteID)
	}

	site := &Site{
		SiteID:      siteID,
		SiteName:    m.SiteName,
		Address:     m.Address,
		Timezone:    m.Timezone,
		CountryCode: m.CountryCode,
		Devices:     []*Device{},
	}
	t.Sites[siteID] = site
	t.siteOrder = append(t.siteOrder, siteID)

	return site
}

// mergeStats copies runtime attributes from a statistics record onto the
// device. Uptime and version stay absent when the record lacks them;
// status defaults to "unknown" because the stats endpoint always has an
// opinion about reachability.
func mergeStats(dev *Device, stat record.Value) {
	status := stat.Get("status").Str("unknown")
	dev.Status = &status

	if uptime, ok := stat.Get("uptime").IntOK(); ok {
		dev.Uptime = &uptime
	}
	if version, ok := stat.Get("version").StrOK(); ok {
		dev.Version = &version
	}
}

// extractConnections pulls every attachment observation out of one
// statistics record: ports that are up first, then LLDP neighbor entries.
// A physical link present in both sources yields two records; collapsing
// them is left to unique-link counting.
func extractConnections(stat record.Value) []*Connection {
	var conns []*Connection

	for _, port := range stat.Get("port_stat").Items() {
		if !port.Get("up").Bool(false) {
			continue
		}

		conn := &Connection{
			Port:   port.Get("port_id").Str("N/A"),
			Status: statusUp,
		}

		if speed, ok := port.Get("speed").IntOK(); ok {
			conn.Speed = &speed
		}
		rx := port.Get("rx_bytes").Int(0)
		tx := port.Get("tx_bytes").Int(0)
		conn.RxBytes = &rx
		conn.TxBytes = &tx

		// Some switch models report their wired neighbor directly in
		// the port entry.
		if neighborMac, ok := port.Get("neighbor_mac").StrOK(); ok && neighborMac != "" {
			conn.NeighborMac = neighborMac
			conn.NeighborPort = port.Get("neighbor_port").Str("")
			conn.NeighborSystem = port.Get("neighbor_system_name").Str("")
		}

		conns = append(conns, conn)
	}

	for _, lldp := range stat.Get("lldp_stat").Items() {
		localPort := lldp.Get("local_port_id").Str("")
		if localPort == "" {
			localPort = lldp.Get("port_id").Str("N/A")
		}

		conns = append(conns, &Connection{
			Port:                localPort,
			Status:              statusDiscovered,
			Protocol:            protocolLLDP,
			NeighborMac:         lldp.Get("chassis_id").Str(""),
			NeighborPort:        lldp.Get("port_id").Str(""),
			NeighborSystem:      lldp.Get("system_name").Str(""),
			NeighborDescription: lldp.Get("port_desc").Str(""),
		})
	}

	return conns
}

func linkFromConnection(dev *Device, conn *Connection) *Link {
	protocol := conn.Protocol
	if protocol == "" {
		protocol = protocolLLDP
	}

	return &Link{
		SourceMac:  dev.Mac,
		SourcePort: conn.Port,
		SourceName: dev.Name,
		TargetMac:  conn.NeighborMac,
		TargetPort: conn.NeighborPort,
		LinkStatus: conn.Status,
		SpeedMbps:  conn.Speed,
		Protocol:   protocol,
	}
}
