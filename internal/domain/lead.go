package domain

import "time"

const (
	KeySessionID = "session_id"
	KeyTimestamp = "timestamp"
)

// Lead is the persisted form of a finished conversation.
type Lead struct {
	SessionID string
	Timestamp time.Time
	Fields    map[string]string
}

// NewLead seals a record for persistence, stamping it with ts.
func NewLead(sessionID string, r *Record, ts time.Time) Lead {
	fields := map[string]string{}
	if r != nil {
		fields = r.Fields()
	}
	return Lead{
		SessionID: sessionID,
		Timestamp: ts.UTC(),
		Fields:    fields,
	}
}

// Flat returns the single-level key/value layout written by the line stores.
func (l Lead) Flat() map[string]string {
	out := make(map[string]string, len(l.Fields)+2)
	for k, v := range l.Fields {
		out[k] = v
	}
	out[KeySessionID] = l.SessionID
	out[KeyTimestamp] = l.Timestamp.Format(time.RFC3339)
	return out
}
