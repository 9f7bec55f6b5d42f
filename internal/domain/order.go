package domain

// OrderItem is one line of an order submission.
type OrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the payload POSTed to the remote orders endpoint. It is
// derived from the cart at submission time and not retained. Customer
// fields are carried verbatim, untrimmed.
type OrderRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
}

// OrderConfirmation carries the server-assigned order identifier returned
// on a successful submission.
type OrderConfirmation struct {
	ID int64 `json:"id"`
}
