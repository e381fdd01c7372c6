// Package bridge mirrors observable containers across processes over
// WebSocket. A Server exposes named containers; every committed change is
// pushed to connected clients as JSON, and inbound writes are applied
// through the target container's own coercion and validation. Mirror keeps
// a local container synchronized with a served one in both directions.
//
// All marshaling lives here; the core container never serializes anything.
package bridge
