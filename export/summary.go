package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mist-tools/misttopo/topology"
)

// timeLayout is the human-readable form of the discovery timestamp.
const timeLayout = "2006-01-02 15:04:05"

// Summary is the compact roll-up of one discovery run.
type Summary struct {
	SummaryInfo    SummaryInfo    `json:"summary_info"`
	Infrastructure Infrastructure `json:"infrastructure"`
	Connectivity   Connectivity   `json:"connectivity"`
}

// SummaryInfo identifies the run itself.
type SummaryInfo struct {
	OrganizationID string `json:"organization_id"`
	APICallsUsed   int    `json:"api_calls_used"`
	Timestamp      int64  `json:"timestamp"`
	DiscoveryTime  string `json:"discovery_time"`
}

// Infrastructure counts what was found.
type Infrastructure struct {
	Sites        int `json:"sites"`
	TotalDevices int `json:"total_devices"`
	Switches     int `json:"switches"`
	AccessPoints int `json:"access_points"`
	Gateways     int `json:"gateways"`
}

// Connectivity counts how it is wired together.
type Connectivity struct {
	TotalConnections       int `json:"total_connections"`
	UniqueLinks            int `json:"unique_links"`
	DevicesWithConnections int `json:"devices_with_connections"`
}

// BuildSummary derives a Summary from an assembled topology.
func BuildSummary(top *topology.Topology) *Summary {
	stats := top.Statistics
	if stats == nil {
		stats = &topology.Statistics{}
	}

	return &Summary{
		SummaryInfo: SummaryInfo{
			OrganizationID: top.OrganizationID,
			APICallsUsed:   top.APICallsUsed,
			Timestamp:      top.Timestamp,
			DiscoveryTime:  time.Unix(top.Timestamp, 0).Format(timeLayout),
		},
		Infrastructure: Infrastructure{
			Sites:        stats.TotalSites,
			TotalDevices: stats.TotalDevices,
			Switches:     stats.TotalSwitches,
			AccessPoints: stats.TotalAPs,
			Gateways:     stats.TotalGateways,
		},
		Connectivity: Connectivity{
			TotalConnections:       stats.TotalConnections,
			UniqueLinks:            stats.UniqueLinks,
			DevicesWithConnections: stats.DevicesWithConnections,
		},
	}
}

// WriteSummary writes the summary as indented JSON.
func WriteSummary(w io.Writer, top *topology.Topology) error {
	return writeJSON(w, BuildSummary(top), "failed to write topology summary")
}

// WriteTopology writes the full topology as indented JSON.
func WriteTopology(w io.Writer, top *topology.Topology) error {
	return writeJSON(w, top, "failed to write topology")
}

func writeJSON(w io.Writer, v any, errorMsg string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errorMsg)
	}
	return nil
}
