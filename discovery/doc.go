// Package discovery orchestrates a full topology discovery run against one
// Mist organization: inventory first, then site metadata, then per-site
// device statistics, handed to the topology assembler as one batch.
//
// The orchestrator is deliberately forgiving: a site whose statistics call
// fails is logged and skipped, producing a sparser topology rather than a
// failed run. Only the initial inventory call is fatal, because without it
// there is nothing to assemble.
package discovery
