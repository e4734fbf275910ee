package backend

import (
	"context"
	"net/http"
	"net/url"
)

// WishlistService covers the favorites endpoints. Toggle flips membership;
// the caller re-checks status afterwards if it needs the new state.
type WishlistService struct {
	c *Client
}

// Wishlist returns the favorites endpoints.
func (c *Client) Wishlist() *WishlistService { return &WishlistService{c: c} }

// Toggle adds the product to the account's favorites, or removes it when
// already present.
func (s *WishlistService) Toggle(ctx context.Context, productID string) error {
	body := struct {
		ProductID string `json:"productId"`
	}{ProductID: productID}
	return s.c.do(ctx, http.MethodPost, "/favorites/toggle", body, nil)
}

// List returns the account's favorite products.
func (s *WishlistService) List(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/favorites/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// IsFavorite reports whether the product is in the account's favorites.
func (s *WishlistService) IsFavorite(ctx context.Context, productID string) (bool, error) {
	var resp struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/favorites/check/"+url.PathEscape(productID), nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}

// FavoriteCount returns how many accounts favor the product. Works without
// authentication.
func (s *WishlistService) FavoriteCount(ctx context.Context, productID string) (int, error) {
	var resp struct {
		FavoriteCount int `json:"favoriteCount"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/favorites/count/"+url.PathEscape(productID), nil, &resp); err != nil {
		return 0, err
	}
	return resp.FavoriteCount, nil
}
