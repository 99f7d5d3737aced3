// Package observability provides logging and metrics interfaces for the
// misttopo client and discovery pipeline.
//
// The Logger interface supports structured logging with key-value pairs and
// can be backed by any logging library. A logrus-backed implementation is
// provided via NewLogrusLogger; the CLI uses it, library consumers may plug
// in their own.
//
// The MetricsRecorder interface tracks HTTP request counts, retries, rate
// limit waits and errors. CallCounter is a small in-memory implementation
// useful for reporting how many API calls a discovery run consumed.
//
// When no logger or recorder is provided, noop implementations are used so
// there is zero overhead for callers that do not care.
package observability
