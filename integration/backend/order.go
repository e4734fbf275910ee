package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/glowmart/storefront/core/checkout"
	"github.com/glowmart/storefront/core/order"
)

// OrderService covers the order endpoints: creation for the checkout flow,
// reads and cancellation for the order history screens.
type OrderService struct {
	c *Client
}

// Orders returns the order endpoints.
func (c *Client) Orders() *OrderService { return &OrderService{c: c} }

type shippingInfoDTO struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CityName     string `json:"cityName"`
	DistrictName string `json:"districtName"`
	WardName     string `json:"wardName"`
}

type orderDTO struct {
	Code         string          `json:"orderCode"`
	Status       string          `json:"status"`
	ShippingInfo shippingInfoDTO `json:"shippingInfo"`
	Items        []struct {
		Product struct {
			ID     string   `json:"_id"`
			Name   string   `json:"name"`
			Images []string `json:"images"`
		} `json:"productId"`
		Quantity    int   `json:"quantity"`
		PriceAtTime int64 `json:"priceAtTime"`
	} `json:"items"`
	TotalPrice int64 `json:"totalPrice"`
	Fees       struct {
		MainFee  int64 `json:"mainFee"`
		Discount int64 `json:"discount"`
		FinalFee int64 `json:"finalFee"`
	} `json:"shippingFeeDetails"`
	OrderDate             time.Time `json:"orderDate"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
}

func (d orderDTO) toOrder() order.Order {
	out := order.Order{
		Code:   d.Code,
		Status: order.Status(d.Status),
		ShippingInfo: order.ShippingInfo{
			FullName:     d.ShippingInfo.FullName,
			Phone:        d.ShippingInfo.Phone,
			Detail:       d.ShippingInfo.Address,
			ProvinceName: d.ShippingInfo.CityName,
			DistrictName: d.ShippingInfo.DistrictName,
			WardName:     d.ShippingInfo.WardName,
		},
		TotalPrice: d.TotalPrice,
		Fees: order.FeeDetails{
			MainFee:  d.Fees.MainFee,
			Discount: d.Fees.Discount,
			FinalFee: d.Fees.FinalFee,
		},
		OrderedAt:         d.OrderDate,
		EstimatedDelivery: d.EstimatedDeliveryDate,
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, order.Line{
			ProductID:   it.Product.ID,
			Name:        it.Product.Name,
			Images:      it.Product.Images,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}
	return out
}

// Create places an order from the confirmed checkout summary. The fee and
// insured value are the ones the user saw; nothing is recomputed here.
func (s *OrderService) Create(ctx context.Context, req checkout.CreateOrderRequest) (order.Order, error) {
	body := struct {
		ShippingInfo   shippingInfoDTO `json:"shippingInfo"`
		InsuranceValue int64           `json:"insurance_value"`
		ShippingFee    int64           `json:"shipping_fee_input"`
	}{
		ShippingInfo: shippingInfoDTO{
			FullName:     req.ShippingInfo.FullName,
			Phone:        req.ShippingInfo.Phone,
			Address:      req.ShippingInfo.Detail,
			CityName:     req.ShippingInfo.ProvinceName,
			DistrictName: req.ShippingInfo.DistrictName,
			WardName:     req.ShippingInfo.WardName,
		},
		InsuranceValue: req.InsuredValue,
		ShippingFee:    req.ShippingFee,
	}
	var resp struct {
		Order orderDTO `json:"order"`
	}
	if err := s.c.do(ctx, http.MethodPost, "/order/create-order", body, &resp); err != nil {
		return order.Order{}, err
	}
	return resp.Order.toOrder(), nil
}

// List returns every order on the account.
func (s *OrderService) List(ctx context.Context) ([]order.Order, error) {
	var resp struct {
		Orders []orderDTO `json:"orders"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/order", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]order.Order, 0, len(resp.Orders))
	for _, d := range resp.Orders {
		out = append(out, d.toOrder())
	}
	return out, nil
}

// Get returns one order by its code.
func (s *OrderService) Get(ctx context.Context, code string) (order.Order, error) {
	var resp struct {
		Order orderDTO `json:"order"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/order/details/"+url.PathEscape(code), nil, &resp); err != nil {
		return order.Order{}, err
	}
	return resp.Order.toOrder(), nil
}

// Cancel asks the server to cancel a still-pending order and returns the
// order in its post-cancellation state.
func (s *OrderService) Cancel(ctx context.Context, code string) (order.Order, error) {
	var resp struct {
		Order orderDTO `json:"order"`
	}
	if err := s.c.do(ctx, http.MethodPost, "/order/cancel/"+url.PathEscape(code), nil, &resp); err != nil {
		return order.Order{}, err
	}
	return resp.Order.toOrder(), nil
}
