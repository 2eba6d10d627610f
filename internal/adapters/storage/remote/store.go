package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"household-illness-tracker/internal/platform/httpclient"
	"household-illness-tracker/internal/ports/store"
)

// DefaultPerPage es el tamaño de página de getFullList.
const DefaultPerPage = 500

// Store habla el contrato REST de PocketBase.
type Store struct {
	http    *httpclient.Client
	perPage int
}

// New usa c tal cual: BaseURL y Authorization de servicio se configuran en el cliente.
func New(c *httpclient.Client) *Store {
	return &Store{http: c, perPage: DefaultPerPage}
}

type listPage struct {
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
	Items      []store.Record `json:"items"`
}

func recordsPath(collection string) string {
	return "/api/collections/" + url.PathEscape(collection) + "/records"
}

// List pagina hasta traer la lista completa.
func (s *Store) List(ctx context.Context, collection string, opts store.ListOptions) ([]store.Record, error) {
	q := url.Values{}
	if f := renderFilter(opts.Filter); f != "" {
		q.Set("filter", f)
	}
	if srt := renderSort(opts.Sort); srt != "" {
		q.Set("sort", srt)
	}
	if len(opts.Fields) > 0 {
		q.Set("fields", strings.Join(opts.Fields, ","))
	}
	q.Set("perPage", strconv.Itoa(s.perPage))

	out := make([]store.Record, 0)
	for page := 1; ; page++ {
		q.Set("page", strconv.Itoa(page))

		var res listPage
		if err := s.http.Do(ctx, httpclient.Request{
			Method: http.MethodGet,
			Path:   recordsPath(collection),
			Query:  q,
			Out:    &res,
		}); err != nil {
			return nil, mapErr(collection, err)
		}

		out = append(out, res.Items...)
		if len(res.Items) < s.perPage || page >= res.TotalPages {
			return out, nil
		}
	}
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, store.ErrNotFound
	}

	var out store.Record
	if err := s.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   recordsPath(collection) + "/" + url.PathEscape(id),
		Out:    &out,
	}); err != nil {
		return nil, mapErr(collection, err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, collection string, payload store.Record) (store.Record, error) {
	var out store.Record
	if err := s.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   recordsPath(collection),
		In:     payload,
		Out:    &out,
	}); err != nil {
		return nil, mapErr(collection, err)
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, payload store.Record) (store.Record, error) {
	var out store.Record
	if err := s.http.Do(ctx, httpclient.Request{
		Method: http.MethodPatch,
		Path:   recordsPath(collection) + "/" + url.PathEscape(strings.TrimSpace(id)),
		In:     payload,
		Out:    &out,
	}); err != nil {
		return nil, mapErr(collection, err)
	}
	return out, nil
}

func mapErr(collection string, err error) error {
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return store.ErrNotFound
	}
	return fmt.Errorf("remote store %s: %w", collection, err)
}
