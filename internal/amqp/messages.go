package amqp

import (
	"encoding/json"
	"time"
)

// Change operations published after a successful save.
const (
	OpBankCreated        = "bank:created"
	OpBankUpdated        = "bank:updated"
	OpBankDeleted        = "bank:deleted"
	OpTransactionAdded   = "transaction:added"
	OpTransactionUpdated = "transaction:updated"
	OpTransactionDeleted = "transaction:deleted"
	OpCollectionImported = "collection:imported"
	OpCollectionCleared  = "collection:cleared"
)

// ChangeMessage is a lightweight notification that the collection
// changed. Consumers reload from the shared store; the message carries
// no payload beyond what changed.
type ChangeMessage struct {
	Op        string    `json:"op"`
	BankID    int64     `json:"bank_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(op string, bankID int64) *ChangeMessage {
	return &ChangeMessage{
		Op:        op,
		BankID:    bankID,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
