package topology

// ComputeStatistics derives summary counters from an assembled Topology.
// It is a pure read: nothing on the Topology is modified.
//
// Unique links are counted by normalizing each link to the unordered pair
// of its endpoint MACs (min, max by string order) regardless of port, so a
// link reported by both endpoints, or by both the port and LLDP source on
// one endpoint, counts once. Links without a target MAC are not resolvable
// to a peer and are excluded.
func ComputeStatistics(t *Topology) *Statistics {
	totalLinks := 0
	unique := make(map[[2]string]struct{})

	for _, link := range t.TopologyLinks {
		if link.TargetMac == "" {
			continue
		}
		totalLinks++

		a, b := link.SourceMac, link.TargetMac
		if b < a {
			a, b = b, a
		}
		unique[[2]string{a, b}] = struct{}{}
	}

	return &Statistics{
		TotalSites:             len(t.Sites),
		TotalDevices:           t.TotalDevices,
		TotalSwitches:          len(t.DevicesByType[TypeSwitch]),
		TotalAPs:               len(t.DevicesByType[TypeAP]),
		TotalGateways:          len(t.DevicesByType[TypeGateway]),
		TotalConnections:       totalLinks,
		UniqueLinks:            len(unique),
		DevicesWithConnections: len(t.DeviceConnections),
	}
}
