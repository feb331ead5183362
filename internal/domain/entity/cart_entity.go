package entity

// CartLine is one cart entry resolved against the current catalog snapshot.
// A product appears at most once per user's cart; quantity is always >= 1.
type CartLine struct {
	Product  Product
	Quantity int
}
