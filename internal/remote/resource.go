package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"qlcc/internal/store"
)

type listPayload[T any] struct {
	Data         []T `json:"data"`
	RecordsTotal int `json:"recordsTotal"`
}

// Resource is the CRUD endpoint set of one entity kind, e.g. /hotlines.
// It implements store.Backend.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: "/" + strings.Trim(path, "/")}
}

func (r *Resource[T]) item(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T]) List(ctx context.Context, params url.Values) (store.Page[T], error) {
	var payload listPayload[T]
	err := r.client.Do(ctx, Request{URL: r.path, Method: http.MethodGet, Query: params, UseCredentials: true}, &payload)
	if err != nil {
		return store.Page[T]{}, err
	}
	if payload.Data == nil {
		payload.Data = []T{}
	}
	return store.Page[T]{Items: payload.Data, Total: payload.RecordsTotal}, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.client.Do(ctx, Request{URL: r.item(id), Method: http.MethodGet, UseCredentials: true}, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, e T) (T, error) {
	var out T
	err := r.client.Do(ctx, Request{URL: r.path, Method: http.MethodPost, Body: e, UseCredentials: true}, &out)
	return out, err
}

// Import posts the whole batch; the upstream applies it in one transaction.
func (r *Resource[T]) Import(ctx context.Context, es []T) ([]T, error) {
	var out []T
	err := r.client.Do(ctx, Request{URL: r.path + "/import", Method: http.MethodPost, Body: es, UseCredentials: true}, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id int64, e T) (T, error) {
	var out T
	err := r.client.Do(ctx, Request{URL: r.item(id), Method: http.MethodPut, Body: e, UseCredentials: true}, &out)
	return out, err
}

// Delete expects {data: true}; false is reported as a failure.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	var ok bool
	if err := r.client.Do(ctx, Request{URL: r.item(id), Method: http.MethodDelete, UseCredentials: true}, &ok); err != nil {
		return err
	}
	if !ok {
		return &Failure{Status: http.StatusOK, Message: "delete was not applied"}
	}
	return nil
}
