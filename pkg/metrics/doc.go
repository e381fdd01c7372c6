// Package metrics provides opt-in Prometheus instrumentation for observable
// containers. The core container records nothing on its own; everything here
// hangs off the public callback and write APIs.
package metrics
