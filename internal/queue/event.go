// Package queue defines catalog change events and the RabbitMQ
// publisher/consumer that move them. Events are informational: the
// request path never depends on the broker being reachable.
package queue

// Actions carried by BookEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BookEvent is published whenever a catalog record changes. It carries
// enough context for downstream consumers to log or notify without
// querying the primary database.
type BookEvent struct {
	Action     string  `json:"action"`
	BookID     uint64  `json:"book_id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	UserID     *uint64 `json:"user_id,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
