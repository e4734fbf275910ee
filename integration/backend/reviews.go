package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ReviewService covers the product review endpoints.
type ReviewService struct {
	c *Client
}

// Reviews returns the review endpoints.
func (c *Client) Reviews() *ReviewService { return &ReviewService{c: c} }

// Review is one published product review.
type Review struct {
	ID     string `json:"_id"`
	Author struct {
		FullName string `json:"fullName"`
		Avatar   string `json:"avatar"`
	} `json:"userId"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingSummary aggregates a product's reviews.
type RatingSummary struct {
	AverageRating string      `json:"averageRating"`
	ReviewCount   int         `json:"reviewCount"`
	Breakdown     map[int]int `json:"-"`
}

// Eligibility says whether the account may review a product. Purchases
// grant review credits; remaining is how many are left.
type Eligibility struct {
	CanReview bool `json:"canReview"`
	Remaining int  `json:"remainingReviews"`
}

// Add publishes a review for a purchased product.
func (s *ReviewService) Add(ctx context.Context, productID string, rating int, comment string) (Review, error) {
	body := struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}{ProductID: productID, Rating: rating, Comment: comment}

	var resp struct {
		Review Review `json:"review"`
	}
	if err := s.c.do(ctx, http.MethodPost, "/reviews/add", body, &resp); err != nil {
		return Review{}, err
	}
	return resp.Review, nil
}

// ForProduct lists the published reviews of a product.
func (s *ReviewService) ForProduct(ctx context.Context, productID string) ([]Review, error) {
	var resp struct {
		Reviews []Review `json:"reviews"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(productID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

// Average returns a product's aggregated rating.
func (s *ReviewService) Average(ctx context.Context, productID string) (RatingSummary, error) {
	var resp struct {
		AverageRating string         `json:"averageRating"`
		ReviewCount   int            `json:"reviewCount"`
		Breakdown     map[string]int `json:"ratingBreakdown"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/reviews/average/"+url.PathEscape(productID), nil, &resp); err != nil {
		return RatingSummary{}, err
	}
	out := RatingSummary{
		AverageRating: resp.AverageRating,
		ReviewCount:   resp.ReviewCount,
		Breakdown:     map[int]int{},
	}
	for star := 1; star <= 5; star++ {
		out.Breakdown[star] = resp.Breakdown[strconv.Itoa(star)]
	}
	return out, nil
}

// Eligibility checks whether the account may review the product.
func (s *ReviewService) Eligibility(ctx context.Context, productID string) (Eligibility, error) {
	var resp Eligibility
	if err := s.c.do(ctx, http.MethodGet, "/reviews/eligibility/"+url.PathEscape(productID), nil, &resp); err != nil {
		return Eligibility{}, err
	}
	return resp, nil
}

// ReviewedProducts lists the products the account has already reviewed.
func (s *ReviewService) ReviewedProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/reviews/reviewed-products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// PendingReviews lists purchased products still awaiting a review.
func (s *ReviewService) PendingReviews(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/reviews/pending-reviews", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
