// Package order exposes the client's view of placed orders. Status
// transitions happen server-side; the client only observes them and may
// request cancellation of a still-pending order.
package order

import "time"

// Status is an order's lifecycle state as reported by the server.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
	StatusReturned  Status = "returned"
)

// ShippingInfo is the delivery destination copied into the order at
// creation. It is a value snapshot: later edits to the account's address do
// not alter it.
type ShippingInfo struct {
	FullName     string
	Phone        string
	Detail       string
	ProvinceName string
	DistrictName string
	WardName     string
}

// FeeDetails breaks down the shipping fee agreed at confirmation time.
type FeeDetails struct {
	MainFee  int64
	Discount int64
	FinalFee int64
}

// Line is one product snapshot within an order.
type Line struct {
	ProductID   string
	Name        string
	Images      []string
	Quantity    int
	PriceAtTime int64
}

// Order is a placed order.
type Order struct {
	Code              string
	Status            Status
	ShippingInfo      ShippingInfo
	Items             []Line
	TotalPrice        int64
	Fees              FeeDetails
	OrderedAt         time.Time
	EstimatedDelivery time.Time
}

// CanCancel reports whether the client may still request cancellation.
func (o Order) CanCancel() bool {
	return o.Status == StatusPending
}
