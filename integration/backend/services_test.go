package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/core/checkout"
	"github.com/glowmart/storefront/core/order"
)

func testCreateReq() checkout.CreateOrderRequest {
	return checkout.CreateOrderRequest{
		ShippingInfo: order.ShippingInfo{
			FullName:     "Nguyen Van An",
			Phone:        "0900000000",
			Detail:       "12 Ly Thuong Kiet",
			ProvinceName: "Hà Nội",
			DistrictName: "Hoàn Kiếm",
			WardName:     "Hàng Bạc",
		},
		InsuredValue: 300_000,
		ShippingFee:  35_000,
	}
}

func TestCartService(t *testing.T) {
	t.Parallel()

	cartBody := map[string]any{
		"cart": map[string]any{
			"items": []map[string]any{{
				"productId": map[string]any{
					"_id":    "P1",
					"name":   "Serum",
					"images": []string{"a.png"},
					"price":  120_000,
				},
				"quantity":    2,
				"priceAtTime": 110_000,
			}},
			"totalPrice": 220_000,
		},
	}

	t.Run("get maps the cart document", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/cart", r.URL.Path)
			_ = json.NewEncoder(w).Encode(cartBody)
		}))

		got, err := c.Carts().Get(context.Background())
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "P1", got.Items[0].Product.ID)
		assert.Equal(t, int64(110_000), got.Items[0].PriceAtTime)
		assert.Equal(t, int64(120_000), got.Items[0].Product.UnitPrice)
		assert.Equal(t, int64(220_000), got.TotalPrice)
	})

	t.Run("mutations post the product id to their endpoint", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotProduct string
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gotProduct = body["productId"]
			_ = json.NewEncoder(w).Encode(cartBody)
		}))

		_, err := c.Carts().Add(context.Background(), "P1")
		require.NoError(t, err)
		assert.Equal(t, "/cart/add", gotPath)
		assert.Equal(t, "P1", gotProduct)

		_, err = c.Carts().Decrement(context.Background(), "P2")
		require.NoError(t, err)
		assert.Equal(t, "/cart/remove", gotPath)
		assert.Equal(t, "P2", gotProduct)

		_, err = c.Carts().Remove(context.Background(), "P3")
		require.NoError(t, err)
		assert.Equal(t, "/cart/delete", gotPath)
		assert.Equal(t, "P3", gotProduct)
	})
}

func TestAddressService(t *testing.T) {
	t.Parallel()

	t.Run("get unwraps the nested envelope and parses codes", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/shipping-address", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"data": map[string]any{
						"_id":          "A1",
						"fullName":     "Nguyen Van An",
						"phone":        "0900000000",
						"address":      "12 Ly Thuong Kiet",
						"city":         "201",
						"cityName":     "Hà Nội",
						"district":     "1482",
						"districtName": "Hoàn Kiếm",
						"ward":         "1A0401",
						"wardName":     "Hàng Bạc",
						"isDefault":    true,
					},
				},
			})
		}))

		addr, err := c.Addresses().Get(context.Background())
		require.NoError(t, err)
		require.NotNil(t, addr)
		assert.Equal(t, 201, addr.ProvinceID)
		assert.Equal(t, 1482, addr.DistrictID)
		assert.Equal(t, "1A0401", addr.WardCode)
		assert.True(t, addr.IsDefault)
	})

	t.Run("absent address maps to nil", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "no address"})
		}))

		addr, err := c.Addresses().Get(context.Background())
		require.NoError(t, err)
		assert.Nil(t, addr)
	})

	t.Run("null payload maps to nil", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"data": nil}})
		}))

		addr, err := c.Addresses().Get(context.Background())
		require.NoError(t, err)
		assert.Nil(t, addr)
	})
}

func TestOrderService(t *testing.T) {
	t.Parallel()

	t.Run("create sends the confirmed snapshot verbatim", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/order/create-order", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"order": map[string]any{"orderCode": "OC-7", "status": "pending"},
			})
		}))

		placed, err := c.Orders().Create(context.Background(), testCreateReq())
		require.NoError(t, err)
		assert.Equal(t, "OC-7", placed.Code)
		assert.True(t, placed.CanCancel())

		assert.Equal(t, float64(300_000), got["insurance_value"])
		assert.Equal(t, float64(35_000), got["shipping_fee_input"])
		info, ok := got["shippingInfo"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Nguyen Van An", info["fullName"])
		assert.Equal(t, "Hà Nội", info["cityName"])
		assert.Equal(t, "12 Ly Thuong Kiet", info["address"])
	})

	t.Run("get and cancel target the order code", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotMethod string
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			_ = json.NewEncoder(w).Encode(map[string]any{
				"order": map[string]any{"orderCode": "OC-7", "status": "canceled"},
			})
		}))

		_, err := c.Orders().Get(context.Background(), "OC-7")
		require.NoError(t, err)
		assert.Equal(t, "/order/details/OC-7", gotPath)
		assert.Equal(t, http.MethodGet, gotMethod)

		canceled, err := c.Orders().Cancel(context.Background(), "OC-7")
		require.NoError(t, err)
		assert.Equal(t, "/order/cancel/OC-7", gotPath)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.False(t, canceled.CanCancel())
	})
}

func TestCatalogService(t *testing.T) {
	t.Parallel()

	t.Run("search escapes the keyword", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/products/search", r.URL.Path)
			gotQuery = r.URL.Query().Get("keyword")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"totalProducts": 1,
				"products":      []map[string]any{{"_id": "P1", "name": "Kem chống nắng"}},
			})
		}))

		products, err := c.Catalog().Search(context.Background(), "kem chống nắng")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "kem chống nắng", gotQuery)
	})

	t.Run("brand list is a bare array", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/brands", r.URL.Path)
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"_id": "B1", "name": "Innisfree"},
				{"_id": "B2", "name": "Cocoon"},
			})
		}))

		brands, err := c.Catalog().Brands(context.Background())
		require.NoError(t, err)
		require.Len(t, brands, 2)
		assert.Equal(t, "Cocoon", brands[1].Name)
	})
}

func TestReviewService(t *testing.T) {
	t.Parallel()

	t.Run("average fills the star breakdown", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/reviews/average/P1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"averageRating": "4.5",
				"reviewCount":   10,
				"ratingBreakdown": map[string]int{
					"5": 6, "4": 3, "3": 1, "2": 0, "1": 0,
				},
			})
		}))

		summary, err := c.Reviews().Average(context.Background(), "P1")
		require.NoError(t, err)
		assert.Equal(t, "4.5", summary.AverageRating)
		assert.Equal(t, 10, summary.ReviewCount)
		assert.Equal(t, 6, summary.Breakdown[5])
		assert.Equal(t, 0, summary.Breakdown[1])
	})

	t.Run("eligibility carries the remaining credit", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"canReview":        true,
				"remainingReviews": 2,
			})
		}))

		elig, err := c.Reviews().Eligibility(context.Background(), "P1")
		require.NoError(t, err)
		assert.True(t, elig.CanReview)
		assert.Equal(t, 2, elig.Remaining)
	})
}

func TestWishlistService(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotProduct string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method == http.MethodPost {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gotProduct = body["productId"]
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"isFavorite": true, "favoriteCount": 3})
	}))

	require.NoError(t, c.Wishlist().Toggle(context.Background(), "P1"))
	assert.Equal(t, "/favorites/toggle", gotPath)
	assert.Equal(t, "P1", gotProduct)

	fav, err := c.Wishlist().IsFavorite(context.Background(), "P1")
	require.NoError(t, err)
	assert.True(t, fav)

	count, err := c.Wishlist().FavoriteCount(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
