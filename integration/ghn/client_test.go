package ghn_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/core/remote"
	"github.com/glowmart/storefront/core/shipping"
	"github.com/glowmart/storefront/integration/ghn"
)

func newClient(t *testing.T, handler http.Handler) *ghn.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := ghn.New(ghn.Config{
		BaseURL:       srv.URL,
		Token:         "test-token",
		ShopID:        191234,
		ServiceID:     53320,
		ServiceTypeID: 2,
		WeightGrams:   1500,
		Timeout:       5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := ghn.New(ghn.Config{ShopID: 1})
	assert.ErrorIs(t, err, ghn.ErrMissingCredentials)

	_, err = ghn.New(ghn.Config{Token: "t"})
	assert.ErrorIs(t, err, ghn.ErrMissingCredentials)
}

func TestClient_Fee(t *testing.T) {
	t.Parallel()

	t.Run("sends parcel defaults and returns the total", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v2/shipping-order/fee", r.URL.Path)
			assert.Equal(t, "test-token", r.Header.Get("Token"))
			assert.Equal(t, "191234", r.Header.Get("ShopId"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"code":    200,
				"message": "Success",
				"data": map[string]any{
					"total":         36500,
					"service_fee":   30000,
					"insurance_fee": 6500,
				},
			})
		}))

		fee, err := c.Fee(context.Background(), shipping.FeeRequest{
			DistrictID:   1482,
			WardCode:     "1A0401",
			InsuredValue: 300_000,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(36500), fee)

		assert.Equal(t, float64(2), got["service_type_id"])
		assert.Equal(t, float64(1500), got["weight"])
		assert.Equal(t, float64(1482), got["to_district_id"])
		assert.Equal(t, "1A0401", got["to_ward_code"])
		assert.Equal(t, float64(300_000), got["insurance_value"])
	})

	t.Run("non-200 envelope is a rejection with the gateway message", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code":    400,
				"message": "route not found",
			})
		}))

		_, err := c.Fee(context.Background(), shipping.FeeRequest{DistrictID: 1, WardCode: "X"})
		assert.Equal(t, remote.KindBusiness, remote.KindOf(err))
		assert.Equal(t, "route not found", remote.Message(err))
	})

	t.Run("unreachable gateway is a network failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		c, err := ghn.New(ghn.Config{BaseURL: srv.URL, Token: "t", ShopID: 1, Timeout: time.Second})
		require.NoError(t, err)

		_, err = c.Fee(context.Background(), shipping.FeeRequest{DistrictID: 1, WardCode: "X"})
		assert.True(t, remote.IsNetwork(err))
	})
}

func TestClient_LeadTime(t *testing.T) {
	t.Parallel()

	t.Run("parses the estimate window", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v2/shipping-order/leadtime", r.URL.Path)
			assert.Equal(t, "191234", r.Header.Get("ShopId"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"code":    200,
				"message": "Success",
				"data": map[string]any{
					"leadtime": 1756684800,
					"leadtime_order": map[string]any{
						"from_estimate_date": "2026-09-01",
						"to_estimate_date":   "2026-09-03",
					},
				},
			})
		}))

		window, err := c.LeadTime(context.Background(), 1482, "1A0401")
		require.NoError(t, err)
		assert.Equal(t, 2026, window.From.Year())
		assert.Equal(t, time.September, window.From.Month())
		assert.Equal(t, 3, window.To.Day())
		assert.Equal(t, float64(53320), got["service_id"])
	})

	t.Run("rfc3339 dates are accepted too", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200,
				"data": map[string]any{
					"leadtime_order": map[string]any{
						"from_estimate_date": "2026-09-01T23:59:59Z",
						"to_estimate_date":   "2026-09-03T23:59:59Z",
					},
				},
			})
		}))

		window, err := c.LeadTime(context.Background(), 1482, "1A0401")
		require.NoError(t, err)
		assert.True(t, window.To.After(window.From))
	})
}

func TestClient_MasterData(t *testing.T) {
	t.Parallel()

	t.Run("provinces is a GET without the shop header", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/master-data/province", r.URL.Path)
			assert.Equal(t, "test-token", r.Header.Get("Token"))
			assert.Empty(t, r.Header.Get("ShopId"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200,
				"data": []map[string]any{
					{"ProvinceID": 201, "ProvinceName": "Hà Nội"},
					{"ProvinceID": 202, "ProvinceName": "Hồ Chí Minh"},
				},
			})
		}))

		provinces, err := c.Provinces(context.Background())
		require.NoError(t, err)
		require.Len(t, provinces, 2)
		assert.Equal(t, "Hà Nội", provinces[0].ProvinceName)
	})

	t.Run("districts filter by province", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/master-data/district", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200,
				"data": []map[string]any{
					{"DistrictID": 1482, "DistrictName": "Hoàn Kiếm", "ProvinceID": 201},
				},
			})
		}))

		districts, err := c.Districts(context.Background(), 201)
		require.NoError(t, err)
		require.Len(t, districts, 1)
		assert.Equal(t, 1482, districts[0].DistrictID)
		assert.Equal(t, float64(201), got["province_id"])
	})

	t.Run("wards filter by district", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/master-data/ward", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200,
				"data": []map[string]any{
					{"WardCode": "1A0401", "WardName": "Hàng Bạc", "DistrictID": 1482},
				},
			})
		}))

		wards, err := c.Wards(context.Background(), 1482)
		require.NoError(t, err)
		require.Len(t, wards, 1)
		assert.Equal(t, "1A0401", wards[0].WardCode)
	})
}
