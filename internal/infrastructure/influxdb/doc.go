// Package influxdb provides an optional time-series mirror of access
// events for trend dashboards.
//
// The mirror is strictly best-effort: writes are batched, non-blocking,
// and dropped when the connection is down. SQLite remains the source of
// truth for the event log; nothing in the request path ever waits on
// InfluxDB.
package influxdb
