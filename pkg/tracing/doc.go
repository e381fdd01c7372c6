// Package tracing provides an OpenTelemetry adapter for observable
// containers. Wrapping a container yields a handle whose reads and writes
// are recorded as spans; the underlying container itself never touches a
// tracer and keeps its context-free API.
package tracing
