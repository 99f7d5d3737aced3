// Package topology assembles raw Mist bulk API records into a normalized
// topology graph: sites, devices with merged inventory and runtime
// attributes, directed links derived from port and LLDP neighbor data, and
// summary statistics.
//
// Assembly is a pure function of its input: a single linear pass over the
// organization inventory, cross-referencing per-site device statistics by
// MAC address. No API calls happen here; the discovery package fetches the
// inputs and hands them over. Malformed records never fail assembly - a
// record of the wrong shape behaves like an empty one and every field
// lookup resolves to its documented default.
package topology
