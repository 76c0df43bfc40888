package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OrderReminderJob queries orders placed within the reminder window and
// logs one line per order with its ID and the customer's email.
type OrderReminderJob struct {
	Client *Client
	Log    *Sink
	// Window is how far back to look for orders; defaults to 7 days.
	Window time.Duration
}

type reminderOrder struct {
	ID       string `json:"id"`
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// Run fetches the recent orders and appends a reminder block.
func (j *OrderReminderJob) Run(ctx context.Context) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	window := j.Window
	if window == 0 {
		window = 7 * 24 * time.Hour
	}
	since := time.Now().Add(-window).UTC().Format(time.RFC3339)

	query := fmt.Sprintf(`query {
	orders(orderDateGte: "%s") {
		id
		orderDate
		customer {
			email
		}
	}
}`, since)

	data, err := j.Client.Execute(ctx, query)
	if err != nil {
		return j.Log.Append(fmt.Sprintf("[%s] ERROR: %v", timestamp, err))
	}

	var orders []reminderOrder
	if err := json.Unmarshal(data["orders"], &orders); err != nil {
		return j.Log.Append(fmt.Sprintf("[%s] ERROR: malformed response: %v", timestamp, err))
	}

	var entry strings.Builder
	fmt.Fprintf(&entry, "[%s] Order Reminders:\n", timestamp)
	for _, order := range orders {
		fmt.Fprintf(&entry, "Order ID: %s, Customer Email: %s\n", order.ID, order.Customer.Email)
	}
	return j.Log.Append(entry.String())
}
