// Package event records and queries the door access log.
//
// The log is append-only and deliberately credulous: every report the
// secret gate admits becomes a row, duplicates included. The device is
// the only witness to what happened at the door, so the server never
// second-guesses it - auditors down-rank suspicious entries, the
// ingestor does not drop them.
package event
