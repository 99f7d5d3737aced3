package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/mist-tools/misttopo/topology"
)

// WriteDevicesCSV writes one row per device, grouped by site in inventory
// first-occurrence order.
func WriteDevicesCSV(w io.Writer, top *topology.Topology) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Site", "Device Name", "MAC", "Type", "Model", "Status"}); err != nil {
		return errors.Wrap(err, "failed to write devices CSV header")
	}

	for _, siteID := range top.SiteIDs() {
		site := top.Sites[siteID]
		for _, dev := range site.Devices {
			status := ""
			if dev.Status != nil {
				status = *dev.Status
			}
			row := []string{site.SiteName, dev.Name, dev.Mac, dev.Type, dev.Model, status}
			if err := cw.Write(row); err != nil {
				return errors.Wrap(err, "failed to write devices CSV row")
			}
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush devices CSV")
}

// WriteLinksCSV writes one row per directed link.
func WriteLinksCSV(w io.Writer, top *topology.Topology) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Source Device", "Source Port", "Target MAC", "Target Port", "Status", "Speed"}); err != nil {
		return errors.Wrap(err, "failed to write links CSV header")
	}

	for _, link := range top.TopologyLinks {
		speed := ""
		if link.SpeedMbps != nil {
			speed = strconv.FormatInt(*link.SpeedMbps, 10)
		}
		row := []string{link.SourceName, link.SourcePort, link.TargetMac, link.TargetPort, link.LinkStatus, speed}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write links CSV row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush links CSV")
}
