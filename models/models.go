package models

import "time"

// CartItem is one scanned and priced product in the active cart.
//
// The JSON tags define the persisted wire format: both collections are
// stored as serialized arrays and must round-trip losslessly. Image is
// an optional base64 data URL captured at scan time; when no still was
// taken the field is absent, not empty.
type CartItem struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// Subtotal is the line total (unit price times quantity).
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Purchase is an immutable record of one completed checkout. Total and
// ItemCount are computed at checkout time and frozen; Items is a deep
// snapshot of the cart and never aliases the live collection.
type Purchase struct {
	ID        string     `json:"id"`
	Timestamp int64      `json:"timestamp"`
	Total     float64    `json:"total"`
	ItemCount int64      `json:"itemCount"`
	Items     []CartItem `json:"items"`
}

// Time converts the millisecond epoch timestamp to time.Time.
func (p Purchase) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}
