package service

import (
	"context"
	"errors"
	"strings"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

var ErrMentorServiceNotConfigured = errors.New("mentor service not configured")

// MentorService expone el directorio de mentores del marketplace.
type MentorService struct {
	mentors repository.MentorRepository
}

func NewMentorService(mentors repository.MentorRepository) *MentorService {
	return &MentorService{mentors: mentors}
}

// Browse lista mentores aplicando los filtros de la página de búsqueda.
func (s *MentorService) Browse(ctx context.Context, filter repository.MentorFilter) ([]domain.MentorProfile, error) {
	if s == nil || s.mentors == nil {
		return nil, ErrMentorServiceNotConfigured
	}
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Tag = strings.TrimSpace(filter.Tag)
	filter.Language = strings.TrimSpace(filter.Language)
	filter.Availability = strings.ToLower(strings.TrimSpace(filter.Availability))
	return s.mentors.Browse(ctx, filter)
}

func (s *MentorService) Get(ctx context.Context, id string) (domain.MentorProfile, error) {
	if s == nil || s.mentors == nil {
		return domain.MentorProfile{}, ErrMentorServiceNotConfigured
	}
	return s.mentors.GetByID(ctx, strings.TrimSpace(id))
}

// Similar devuelve mentores cercanos en el espacio de expertise.
func (s *MentorService) Similar(ctx context.Context, id string, k int) ([]domain.MentorProfile, error) {
	if s == nil || s.mentors == nil {
		return nil, ErrMentorServiceNotConfigured
	}
	return s.mentors.ListSimilar(ctx, strings.TrimSpace(id), k)
}
