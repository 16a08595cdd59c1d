package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
)

type profileService struct {
	backend ProfileBackend
}

func NewProfileService(backend ProfileBackend) ProfileService {
	return &profileService{backend: backend}
}

func (s *profileService) Get(ctx context.Context) (domain.Record, error) {
	rec, err := s.backend.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return rec, nil
}

func (s *profileService) Update(ctx context.Context, f *form.Profile) error {
	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	p, _ := f.Payload("").(domain.UserProfile)
	if err := s.backend.UpdateProfile(ctx, p); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}
