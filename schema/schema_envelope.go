package schema

import "time"

// SnapshotEnvelope is the persisted record for one capture date.
// Code and Msg let tooling that reads the store directly tell a healthy
// record apart from a placeholder.
type SnapshotEnvelope struct {
	Code       int            `json:"code"`
	Data       SprintSnapshot `json:"data"`
	UpdateDate string         `json:"updateDate"`
	Msg        string         `json:"msg"`
}

// NewSnapshotEnvelope wraps a successful snapshot.
func NewSnapshotEnvelope(s SprintSnapshot, updated time.Time) SnapshotEnvelope {
	return SnapshotEnvelope{
		Code:       EnvelopeCodeOK,
		Data:       s,
		UpdateDate: updated.Format(EnvelopeUpdateLayout),
		Msg:        EnvelopeMsgOK,
	}
}

// OK reports whether the envelope holds usable data.
func (e SnapshotEnvelope) OK() bool {
	return e.Code == EnvelopeCodeOK
}
