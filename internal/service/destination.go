package service

import (
	"context"
	"errors"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/store"
	"github.com/waypoint-labs/waypoint/pkg/idx"
)

// DestinationService is thin CRUD over the destination store. Access
// control (authentication, admin gating on mutations) lives at the
// transport layer.
type DestinationService struct {
	Store store.Store
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.Store.Destinations().ListDestinations(ctx)
}

func (s *DestinationService) Create(ctx context.Context, name, description, location string) (string, error) {
	id := idx.New().String()
	err := s.Store.Destinations().CreateDestination(ctx, domain.Destination{
		ID:          id,
		Name:        name,
		Description: description,
		Location:    location,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Destinations().DeleteDestination(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}
