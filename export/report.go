package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mist-tools/misttopo/topology"
)

const reportRule = 50

// WriteSummaryReport writes the human-readable discovery summary.
func WriteSummaryReport(w io.Writer, top *topology.Topology) {
	stats := top.Statistics
	if stats == nil {
		stats = &topology.Statistics{}
	}

	rule := strings.Repeat("=", reportRule)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "MIST TOPOLOGY SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Organization ID: %s\n", top.OrganizationID)
	fmt.Fprintf(w, "API Calls Used: %d\n", top.APICallsUsed)
	fmt.Fprintf(w, "Timestamp: %d\n", top.Timestamp)
	fmt.Fprintln(w, "\nINFRASTRUCTURE:")
	fmt.Fprintf(w, "  Sites: %d\n", stats.TotalSites)
	fmt.Fprintf(w, "  Total Devices: %d\n", stats.TotalDevices)
	fmt.Fprintf(w, "  - Switches: %d\n", stats.TotalSwitches)
	fmt.Fprintf(w, "  - Access Points: %d\n", stats.TotalAPs)
	fmt.Fprintf(w, "  - Gateways: %d\n", stats.TotalGateways)
	fmt.Fprintln(w, "\nCONNECTIVITY:")
	fmt.Fprintf(w, "  Total Connections: %d\n", stats.TotalConnections)
	fmt.Fprintf(w, "  Unique Links: %d\n", stats.UniqueLinks)
	fmt.Fprintf(w, "  Devices with Connections: %d\n", stats.DevicesWithConnections)
}

// WriteSiteDetails writes the per-site device listing.
func WriteSiteDetails(w io.Writer, top *topology.Topology) {
	rule := strings.Repeat("=", reportRule)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "SITE DETAILS")
	fmt.Fprintln(w, rule)

	for _, siteID := range top.SiteIDs() {
		site := top.Sites[siteID]
		fmt.Fprintf(w, "\nSite: %s (%s)\n", site.SiteName, siteID)
		fmt.Fprintf(w, "  Device Count: %d\n", site.DeviceCount)

		for _, dev := range site.Devices {
			fmt.Fprintf(w, "    - %s (%s) - %s\n", dev.Name, dev.Type, deviceStatus(dev))
		}
	}
}
