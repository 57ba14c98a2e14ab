package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventEnvelope is the shared v1 envelope used across the platform.
type EventEnvelope struct {
	EventName     string          `json:"eventName"`
	EventVersion  int             `json:"eventVersion"`
	EventID       string          `json:"eventId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	CausationID   string          `json:"causationId,omitempty"`
	Producer      string          `json:"producer"`
	PartitionKey  string          `json:"partitionKey"`
	Sequence      int64           `json:"sequence,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Schema        string          `json:"schema"`
	Payload       json.RawMessage `json:"payload"`
}

func (e EventEnvelope) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName %q", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.EventID == "" {
		return fmt.Errorf("missing eventId")
	}
	return nil
}

type CartLine struct {
	LineID    string `json:"lineId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type CartCreatedPayload struct {
	CartID        string     `json:"cartId"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalAmount   string     `json:"totalAmount"`
	CurrencyCode  string     `json:"currencyCode"`
	Lines         []CartLine `json:"lines"`
	Timestamp     time.Time  `json:"timestamp"`
}

// CartDiscardedPayload reports a stored cart id being dropped. Rejected is
// true when the platform refused the cart and false when it was unreachable.
type CartDiscardedPayload struct {
	CartID    string    `json:"cartId"`
	Rejected  bool      `json:"rejected"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
