// Package notify delivers kitchen tickets over SMTP or RabbitMQ.
package notify

// Message is one kitchen notification.
type Message struct {
	OrderID string `json:"order_id"`
	To      string `json:"recipient"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
