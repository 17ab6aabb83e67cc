package domain

import "time"

// Transaction is a single validated financial transfer accepted by the
// forensic core: unique id, sender, receiver, non-negative amount, and an
// absolute instant. Sender and receiver may be equal; the graph builder
// retains self-loops but every pattern detector skips them.
type Transaction struct {
	ID         string
	SenderID   string
	ReceiverID string
	Amount     float64
	Timestamp  time.Time
}
