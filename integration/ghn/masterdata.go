package ghn

import "context"

// Province is a top-level administrative region.
type Province struct {
	ProvinceID   int    `json:"ProvinceID"`
	ProvinceName string `json:"ProvinceName"`
	Code         string `json:"Code"`
}

// District is a second-level region within a province.
type District struct {
	DistrictID   int    `json:"DistrictID"`
	DistrictName string `json:"DistrictName"`
	ProvinceID   int    `json:"ProvinceID"`
	Code         string `json:"Code"`
}

// Ward is the finest region the gateway routes on. Ward codes are strings,
// unlike the numeric province and district identifiers.
type Ward struct {
	WardCode   string `json:"WardCode"`
	WardName   string `json:"WardName"`
	DistrictID int    `json:"DistrictID"`
}

// Provinces lists every province the carrier serves. Used by the address
// form's region pickers.
func (c *Client) Provinces(ctx context.Context) ([]Province, error) {
	var out []Province
	if err := c.post(ctx, "/master-data/province", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Districts lists the districts of one province.
func (c *Client) Districts(ctx context.Context, provinceID int) ([]District, error) {
	body := struct {
		ProvinceID int `json:"province_id"`
	}{ProvinceID: provinceID}

	var out []District
	if err := c.post(ctx, "/master-data/district", body, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Wards lists the wards of one district.
func (c *Client) Wards(ctx context.Context, districtID int) ([]Ward, error) {
	body := struct {
		DistrictID int `json:"district_id"`
	}{DistrictID: districtID}

	var out []Ward
	if err := c.post(ctx, "/master-data/ward", body, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}
