package event

import (
	"errors"
	"time"
)

// UnknownActor is the sentinel recorded when the device could not match
// the person at the door to an enrolled identity. Failed attempts group
// under this name in frequency reports, which is what makes probing
// visible.
const UnknownActor = "Unknown"

// Date and time layouts used on the wire and in the store.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// AccessEvent is one door access report.
//
// Date and time come from the device clock, not server receipt time:
// the log answers "when was the door opened", not "when did the report
// arrive".
type AccessEvent struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ActorName   string    `json:"actor_name"`
	BiometricID string    `json:"biometric_id,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActorFrequency is one row of the access frequency report.
type ActorFrequency struct {
	ActorName string `json:"actor_name"`
	Count     int    `json:"count"`
}

// Sentinel errors for event operations.
var (
	ErrDateRequired = errors.New("event date is required")
	ErrTimeRequired = errors.New("event time is required")
	ErrBadDate      = errors.New("event date must be YYYY-MM-DD")
	ErrBadTime      = errors.New("event time must be HH:MM:SS")
)
