package realtime

import (
	"encoding/json"
	"fmt"
)

// Operation names mirror the row-change feed the surfaces react to.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// ChangeEvent tells a subscriber that rows in a table changed for a user.
// It intentionally carries no row payload: clients react by refetching the
// full list, never by patching local state from the event.
type ChangeEvent struct {
	Table  string `json:"table"`
	Op     string `json:"op"`
	UserID uint64 `json:"user_id,omitempty"`
}

// Topic returns the subscription topic for the event. Table-wide events
// (users) have no user scope; row-filtered tables are scoped per user.
func (e ChangeEvent) Topic() string {
	if e.UserID == 0 {
		return e.Table
	}
	return fmt.Sprintf("%s:%d", e.Table, e.UserID)
}

func (e ChangeEvent) Marshal() []byte {
	b, _ := json.Marshal(e)
	return b
}
