package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteAccessEvent mirrors a single door-access event to InfluxDB.
//
// The write is non-blocking; data is batched and sent asynchronously.
// If the client is disconnected the point is dropped - the SQLite event
// log is the durable record, the mirror only feeds trend dashboards.
//
// Parameters:
//   - actorName: Display name of the actor, or the unrecognised sentinel
//   - recognised: Whether the device matched the actor to an enrolled identity
//   - at: Event timestamp (device-local clock, already parsed)
func (c *Client) WriteAccessEvent(actorName string, recognised bool, at time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"access_events",
		map[string]string{
			"actor": actorName,
		},
		map[string]interface{}{
			"count":      1,
			"recognised": recognised,
		},
		at,
	)

	c.writeAPI.WritePoint(point)
}
