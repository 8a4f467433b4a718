package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/toeirei/panaderia/internal/model"
)

// AddressAPI covers the address endpoints.
type AddressAPI struct {
	c    *Client
	path string
}

func (a *AddressAPI) List(ctx context.Context) ([]model.Address, error) {
	var out []model.Address
	err := a.c.get(ctx, ResourceAddress, a.path, &out)
	return out, err
}

func (a *AddressAPI) Get(ctx context.Context, id int) (*model.Address, error) {
	var out model.Address
	if err := a.c.get(ctx, ResourceAddress, fmt.Sprintf("%s/%d", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AddressAPI) Save(ctx context.Context, addr model.Address) (*model.Address, error) {
	var out model.Address
	if err := a.c.send(ctx, http.MethodPost, ResourceAddress, a.path+"/save", addr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AddressAPI) Update(ctx context.Context, addr model.Address) (*model.Address, error) {
	var out model.Address
	if err := a.c.send(ctx, http.MethodPut, ResourceAddress, a.path+"/update", addr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an address. Unlike the other resources this is a hard delete.
func (a *AddressAPI) Delete(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodDelete, ResourceAddress, fmt.Sprintf("%s/delete/%d", a.path, id), nil, nil)
}
