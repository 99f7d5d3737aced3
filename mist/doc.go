// Package mist is a read-only client for the Juniper Mist cloud REST API,
// covering the handful of bulk endpoints topology discovery needs:
// organization inventory, organization sites, per-site device statistics,
// discovered switches and device search.
//
// The client favors organization- and site-level bulk endpoints so a full
// topology costs a few calls instead of one per device, and throttles
// itself below the org API quota. Responses decode into tolerant record
// values rather than strict structs: the assembler, not the transport,
// decides how malformed fields degrade.
package mist
