package persons

import (
	"context"

	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

type Service struct {
	st store.Store
	qc *querycache.Client
}

func NewService(st store.Store, qc *querycache.Client) *Service {
	return &Service{st: st, qc: qc}
}

// Cache expone el cliente de queries para los views que observan.
func (s *Service) Cache() *querycache.Client { return s.qc }

func (s *Service) List(ctx context.Context) ([]Person, error) {
	return querycache.Fetch(ctx, s.qc, s.ListQuery())
}

func (s *Service) Get(ctx context.Context, id string) (Person, error) {
	return querycache.Fetch(ctx, s.qc, s.GetQuery(id))
}
