package backend

import (
	"context"
	"net/http"

	"github.com/glowmart/storefront/core/cart"
)

// CartService covers the cart endpoints. Every mutation returns the
// server's post-mutation snapshot, which the engine treats as
// authoritative.
type CartService struct {
	c *Client
}

// Carts returns the cart endpoints.
func (c *Client) Carts() *CartService { return &CartService{c: c} }

// cartDTO mirrors the server's cart document. Product details are embedded
// in each item so lines render without a catalog round-trip.
type cartDTO struct {
	Items []struct {
		Product struct {
			ID     string   `json:"_id"`
			Name   string   `json:"name"`
			Images []string `json:"images"`
			Price  int64    `json:"price"`
		} `json:"productId"`
		Quantity    int   `json:"quantity"`
		PriceAtTime int64 `json:"priceAtTime"`
	} `json:"items"`
	TotalPrice int64 `json:"totalPrice"`
}

func (d cartDTO) toCart() cart.Cart {
	out := cart.Cart{TotalPrice: d.TotalPrice}
	for _, it := range d.Items {
		out.Items = append(out.Items, cart.Line{
			Product: cart.ProductRef{
				ID:        it.Product.ID,
				Name:      it.Product.Name,
				Images:    it.Product.Images,
				UnitPrice: it.Product.Price,
			},
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}
	return out
}

type cartMutation struct {
	ProductID string `json:"productId"`
}

// Get reads the account's current cart.
func (s *CartService) Get(ctx context.Context) (cart.Cart, error) {
	var resp struct {
		Cart cartDTO `json:"cart"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		return cart.Cart{}, err
	}
	return resp.Cart.toCart(), nil
}

// Add increments the product's line by one, creating it at quantity one
// when absent.
func (s *CartService) Add(ctx context.Context, productID string) (cart.Cart, error) {
	return s.mutate(ctx, "/cart/add", productID)
}

// Decrement lowers the product's line by one.
func (s *CartService) Decrement(ctx context.Context, productID string) (cart.Cart, error) {
	return s.mutate(ctx, "/cart/remove", productID)
}

// Remove deletes the product's line entirely.
func (s *CartService) Remove(ctx context.Context, productID string) (cart.Cart, error) {
	return s.mutate(ctx, "/cart/delete", productID)
}

func (s *CartService) mutate(ctx context.Context, path, productID string) (cart.Cart, error) {
	var resp struct {
		Cart cartDTO `json:"cart"`
	}
	if err := s.c.do(ctx, http.MethodPost, path, cartMutation{ProductID: productID}, &resp); err != nil {
		return cart.Cart{}, err
	}
	return resp.Cart.toCart(), nil
}
