package backend

import (
	"context"
	"net/http"
	"net/url"
)

// CatalogService covers the public product, brand, and category endpoints.
// None of them require authentication.
type CatalogService struct {
	c *Client
}

// Catalog returns the catalog endpoints.
func (c *Client) Catalog() *CatalogService { return &CatalogService{c: c} }

// Brand is a cosmetics brand in the catalog.
type Brand struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

// Category is a product category in the catalog.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog entry with everything the product screen renders.
type Product struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	Discount      int64    `json:"discount"`
	Category      Category `json:"category"`
	Brand         Brand    `json:"brand"`
	Images        []string `json:"images"`
	Ingredients   string   `json:"ingredients"`
	Usage         string   `json:"usage"`
	Stock         int      `json:"stock"`
	AverageRating float64  `json:"averageRating"`
	Active        bool     `json:"active"`
	Featured      bool     `json:"featured"`
}

type productListDTO struct {
	TotalProducts int       `json:"totalProducts"`
	Products      []Product `json:"products"`
}

// Products lists the whole catalog.
func (s *CatalogService) Products(ctx context.Context) ([]Product, error) {
	var resp productListDTO
	if err := s.c.do(ctx, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// ProductBySlug returns one product by its URL slug.
func (s *CatalogService) ProductBySlug(ctx context.Context, slug string) (Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/products/product-slug/"+url.PathEscape(slug), nil, &resp); err != nil {
		return Product{}, err
	}
	return resp.Product, nil
}

// Search runs a keyword search over the catalog.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]Product, error) {
	var resp productListDTO
	path := "/products/search?keyword=" + url.QueryEscape(keyword)
	if err := s.c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// ProductsByBrand lists the products of one brand.
func (s *CatalogService) ProductsByBrand(ctx context.Context, brandID string) ([]Product, error) {
	var resp productListDTO
	if err := s.c.do(ctx, http.MethodGet, "/products/get-by-brand/"+url.PathEscape(brandID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// ProductsByCategorySlug lists the products of one category.
func (s *CatalogService) ProductsByCategorySlug(ctx context.Context, slug string) ([]Product, error) {
	var resp productListDTO
	if err := s.c.do(ctx, http.MethodGet, "/products/list/category/slug/"+url.PathEscape(slug), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Brands lists every brand. The server returns a bare array here, unlike
// the enveloped product responses.
func (s *CatalogService) Brands(ctx context.Context) ([]Brand, error) {
	var resp []Brand
	if err := s.c.do(ctx, http.MethodGet, "/brands", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BrandNames lists brand identifiers and names only, for filter pickers.
func (s *CatalogService) BrandNames(ctx context.Context) ([]Brand, error) {
	var resp []Brand
	if err := s.c.do(ctx, http.MethodGet, "/brands/all-names", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BrandByID returns one brand.
func (s *CatalogService) BrandByID(ctx context.Context, id string) (Brand, error) {
	var resp struct {
		Brand Brand `json:"brand"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/brands/"+url.PathEscape(id), nil, &resp); err != nil {
		return Brand{}, err
	}
	return resp.Brand, nil
}

// Categories lists every category.
func (s *CatalogService) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// CategoryNames lists category identifiers and names only.
func (s *CatalogService) CategoryNames(ctx context.Context) ([]Category, error) {
	var resp []Category
	if err := s.c.do(ctx, http.MethodGet, "/categories/all-names", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CategoryBySlug returns one category by its URL slug.
func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var resp struct {
		Category Category `json:"category"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/categories/slug/"+url.PathEscape(slug), nil, &resp); err != nil {
		return Category{}, err
	}
	return resp.Category, nil
}
