package event

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/repository"
)

const (
	passwordLength   = 8
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	contactLength    = 10
)

type Service interface {
	Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	eventRepo repository.EventRepository
}

func NewService(eventRepo repository.EventRepository) Service {
	return &service{eventRepo: eventRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	input.Normalize()
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	password, err := GeneratePassword()
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		FolderPath: strings.TrimSpace(input.FolderPath),
		Contact:    input.Contact,
		Password:   password,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: create event: %v", domain.ErrPersistence, err)
	}
	return event, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *service) List(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.List(ctx)
}

// Delete leaves the event's photos in place.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

func validateCreate(input domain.CreateEventInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.FolderPath) == "" {
		return fmt.Errorf("%w: folder_path is required", domain.ErrValidation)
	}
	if !isContact(input.Contact) {
		return fmt.Errorf("%w: contact must be exactly %d digits", domain.ErrValidation, contactLength)
	}
	return nil
}

func isContact(s string) bool {
	if len(s) != contactLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GeneratePassword returns an 8 character gallery access code drawn from
// A-Z and 0-9.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, passwordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}
