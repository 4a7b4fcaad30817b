package gallery

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/repository"
)

type Service interface {
	Access(ctx context.Context, input domain.GalleryAccessInput) (*domain.GalleryAccess, error)
	ValidateToken(token string) (*Claims, error)
	Photos(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error)
}

// Claims scope a gallery token to exactly one event.
type Claims struct {
	EventID uuid.UUID `json:"event_id"`
	jwt.RegisteredClaims
}

type service struct {
	eventRepo repository.EventRepository
	photoRepo repository.PhotoRepository
	secret    []byte
	expiry    time.Duration
	now       func() time.Time
}

func NewService(eventRepo repository.EventRepository, photoRepo repository.PhotoRepository, secret string, expiry time.Duration) Service {
	return &service{
		eventRepo: eventRepo,
		photoRepo: photoRepo,
		secret:    []byte(secret),
		expiry:    expiry,
		now:       time.Now,
	}
}

func (s *service) Access(ctx context.Context, input domain.GalleryAccessInput) (*domain.GalleryAccess, error) {
	if input.EventID == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: event_id and password are required", domain.ErrValidation)
	}
	eventID, err := uuid.Parse(input.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event_id", domain.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	given := strings.ToUpper(strings.TrimSpace(input.Password))
	if subtle.ConstantTimeCompare([]byte(given), []byte(event.Password)) != 1 {
		return nil, domain.ErrInvalidPassword
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := &Claims{
		EventID: event.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   event.ID.String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &domain.GalleryAccess{
		Token:     token,
		ExpiresAt: expiresAt,
		EventID:   event.ID,
		EventName: event.Name,
	}, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *service) Photos(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error) {
	return s.photoRepo.ListByEvent(ctx, eventID)
}
