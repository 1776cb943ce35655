package amqp

import (
	"encoding/json"
	"time"
)

// VisitSyncMessage tells the worker that a visit was recorded. It
// carries only the ledger id; the worker fetches the full row from the
// database before exporting it.
type VisitSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewVisitSyncMessage(id int64) *VisitSyncMessage {
	return &VisitSyncMessage{ID: id, Timestamp: time.Now()}
}

func (m *VisitSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func VisitSyncMessageFromJSON(data []byte) (*VisitSyncMessage, error) {
	var msg VisitSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
