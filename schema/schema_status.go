package schema

import "time"

// StoreStatus represents the status of the snapshot store.
type StoreStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	Location       string    `json:"location"`
	TotalEntries   int       `json:"total_entries"`
	FirstKey       string    `json:"first_key"`
	LastKey        string    `json:"last_key"`
	LastUpdateTime time.Time `json:"last_update_time"`
	SizeBytes      int64     `json:"size_bytes"`
}
