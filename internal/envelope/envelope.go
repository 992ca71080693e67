package envelope

import (
	"encoding/json"
	"time"
)

// DefaultTTL is the age past which a persisted envelope is treated as absent.
const DefaultTTL = 30 * time.Minute

// readResult classifies the outcome of opening a stored envelope.
type readResult string

const (
	readHit     readResult = "hit"
	readMiss    readResult = "miss"
	readExpired readResult = "expired"
	readCorrupt readResult = "corrupt"
	readError   readResult = "error"
)

// envelope is the wire shape of a stored value: the raw payload plus the
// write timestamp used to compute staleness.
type envelope struct {
	Payload json.RawMessage `json:"payload"`
	SavedAt int64           `json:"saved_at"` // unix milliseconds
}

// seal wraps a payload with the given write time.
func seal(payload any, now time.Time) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Payload: raw, SavedAt: now.UnixMilli()})
}

// open decodes a stored envelope into out, applying the TTL check against
// now. The entry is expired when now - savedAt >= ttl (a boundary-age entry
// is already stale). Undecodable envelopes and undecodable payloads are both
// corrupt: the distinction does not matter to callers, both become a miss.
func open(data []byte, now time.Time, ttl time.Duration, out any) readResult {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return readCorrupt
	}
	if now.Sub(time.UnixMilli(env.SavedAt)) >= ttl {
		return readExpired
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		return readCorrupt
	}
	return readHit
}
