package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/glowmart/storefront/core/address"
)

// AddressService covers the shipping address endpoints. The account keeps
// a single address; an update overwrites it.
type AddressService struct {
	c *Client
}

// Addresses returns the shipping address endpoints.
func (c *Client) Addresses() *AddressService { return &AddressService{c: c} }

// addressDTO mirrors the server's address document. Region codes travel as
// strings on the wire; the district code is numeric in the domain because
// the shipping provider requires it that way.
type addressDTO struct {
	ID           string `json:"_id,omitempty"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	CityName     string `json:"cityName"`
	District     string `json:"district"`
	DistrictName string `json:"districtName"`
	Ward         string `json:"ward"`
	WardName     string `json:"wardName"`
	IsDefault    bool   `json:"isDefault,omitempty"`
}

func (d addressDTO) toAddress() (address.Address, error) {
	provinceID, err := strconv.Atoi(d.City)
	if err != nil {
		return address.Address{}, fmt.Errorf("parsing province code %q: %w", d.City, err)
	}
	districtID, err := strconv.Atoi(d.District)
	if err != nil {
		return address.Address{}, fmt.Errorf("parsing district code %q: %w", d.District, err)
	}
	return address.Address{
		ID:           d.ID,
		FullName:     d.FullName,
		Phone:        d.Phone,
		Detail:       d.Address,
		ProvinceID:   provinceID,
		ProvinceName: d.CityName,
		DistrictID:   districtID,
		DistrictName: d.DistrictName,
		WardCode:     d.Ward,
		WardName:     d.WardName,
		IsDefault:    d.IsDefault,
	}, nil
}

func fromAddress(a address.Address) addressDTO {
	return addressDTO{
		ID:           a.ID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		Address:      a.Detail,
		City:         strconv.Itoa(a.ProvinceID),
		CityName:     a.ProvinceName,
		District:     strconv.Itoa(a.DistrictID),
		DistrictName: a.DistrictName,
		Ward:         a.WardCode,
		WardName:     a.WardName,
		IsDefault:    a.IsDefault,
	}
}

// Get reads the account's shipping address, nil when none is set yet. A
// 404 from the server also means no address.
func (s *AddressService) Get(ctx context.Context) (*address.Address, error) {
	var resp struct {
		Data struct {
			Data *addressDTO `json:"data"`
		} `json:"data"`
	}
	err := s.c.do(ctx, http.MethodGet, "/shipping-address", nil, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if resp.Data.Data == nil {
		return nil, nil
	}
	addr, err := resp.Data.Data.toAddress()
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// Save overwrites the account's shipping address and returns the stored
// record.
func (s *AddressService) Save(ctx context.Context, addr address.Address) (address.Address, error) {
	var resp struct {
		Data struct {
			Address addressDTO `json:"address"`
		} `json:"data"`
	}
	if err := s.c.do(ctx, http.MethodPut, "/shipping-address/update", fromAddress(addr), &resp); err != nil {
		return address.Address{}, err
	}
	return resp.Data.Address.toAddress()
}
