package ghn

import (
	"context"
	"fmt"
	"time"

	"github.com/glowmart/storefront/core/shipping"
)

// estimateDateLayouts covers the formats the gateway has been seen using
// for estimate dates.
var estimateDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseEstimateDate(s string) (time.Time, error) {
	for _, layout := range estimateDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized estimate date %q", s)
}

// Fee computes the delivery fee for a destination. The returned value is
// the gateway's total, inclusive of the insurance component.
func (c *Client) Fee(ctx context.Context, req shipping.FeeRequest) (int64, error) {
	body := struct {
		ServiceTypeID  int    `json:"service_type_id"`
		ToDistrictID   int    `json:"to_district_id"`
		ToWardCode     string `json:"to_ward_code"`
		Weight         int    `json:"weight"`
		InsuranceValue int64  `json:"insurance_value"`
	}{
		ServiceTypeID:  c.cfg.ServiceTypeID,
		ToDistrictID:   req.DistrictID,
		ToWardCode:     req.WardCode,
		Weight:         c.cfg.WeightGrams,
		InsuranceValue: req.InsuredValue,
	}

	var data struct {
		Total int64 `json:"total"`
	}
	if err := c.post(ctx, "/v2/shipping-order/fee", body, true, &data); err != nil {
		return 0, err
	}
	return data.Total, nil
}

// LeadTime computes the estimated delivery window for a destination.
func (c *Client) LeadTime(ctx context.Context, districtID int, wardCode string) (shipping.Window, error) {
	body := struct {
		ToDistrictID int    `json:"to_district_id"`
		ToWardCode   string `json:"to_ward_code"`
		ServiceID    int    `json:"service_id"`
	}{
		ToDistrictID: districtID,
		ToWardCode:   wardCode,
		ServiceID:    c.cfg.ServiceID,
	}

	var data struct {
		Order struct {
			From string `json:"from_estimate_date"`
			To   string `json:"to_estimate_date"`
		} `json:"leadtime_order"`
	}
	if err := c.post(ctx, "/v2/shipping-order/leadtime", body, true, &data); err != nil {
		return shipping.Window{}, err
	}

	from, err := parseEstimateDate(data.Order.From)
	if err != nil {
		return shipping.Window{}, err
	}
	to, err := parseEstimateDate(data.Order.To)
	if err != nil {
		return shipping.Window{}, err
	}
	return shipping.Window{From: from, To: to}, nil
}
