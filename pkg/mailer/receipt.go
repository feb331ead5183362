package mailer

import (
	"fmt"
	"time"
)

// ReceiptJob is the JSON payload queued after a successful checkout. The
// email worker renders and sends it; the API never blocks on delivery.
type ReceiptJob struct {
	To         string    `json:"to"`
	Name       string    `json:"name"`
	OrderID    string    `json:"order_id"`
	TotalPrice float64   `json:"total_price"`
	Items      int       `json:"items"`
	PlacedAt   time.Time `json:"placed_at"`
}

func (j ReceiptJob) Subject() string {
	return fmt.Sprintf("Your order %s", j.OrderID)
}

func (j ReceiptJob) Text() string {
	return fmt.Sprintf(
		"Hi %s,\n\nThanks for your purchase. Order %s (%d item(s), total $%.2f) was placed on %s.\n\nYour games are already in your library.\n",
		j.Name, j.OrderID, j.Items, j.TotalPrice, j.PlacedAt.Format("Jan 2, 2006 15:04 MST"),
	)
}
