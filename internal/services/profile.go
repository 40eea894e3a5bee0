package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roa-marketplace-backend/internal/models"
)

// ProfileService handles self-service profile management
type ProfileService struct {
	profiles ProfileStore
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// ProfileUpdateInput carries the fields a user may edit on their own
// profile. Admin-only flags are never touched here.
type ProfileUpdateInput struct {
	FullName    *string  `json:"full_name"`
	Phone       *string  `json:"phone"`
	Address     *string  `json:"address"`
	UserType    *string  `json:"user_type"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
}

// Get retrieves a user's profile
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, userID)
}

// Update applies self-service edits to the caller's own profile
func (s *ProfileService) Update(ctx context.Context, userID string, input ProfileUpdateInput) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	if input.FullName != nil {
		profile.FullName = input.FullName
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.UserType != nil {
		if !validUserType(*input.UserType) {
			return nil, validationErr("user_type must be generador, transformador or consumidor")
		}
		profile.UserType = input.UserType
	}
	if input.LocationLat != nil {
		if *input.LocationLat < -90 || *input.LocationLat > 90 {
			return nil, validationErr("location_lat must be between -90 and 90")
		}
		profile.LocationLat = input.LocationLat
	}
	if input.LocationLng != nil {
		if *input.LocationLng < -180 || *input.LocationLng > 180 {
			return nil, validationErr("location_lng must be between -180 and 180")
		}
		profile.LocationLng = input.LocationLng
	}
	profile.UpdatedAt = time.Now()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

func validUserType(t string) bool {
	switch t {
	case "generador", "transformador", "consumidor":
		return true
	}
	return false
}

// RegisterPushToken stores or clears the caller's device push token
func (s *ProfileService) RegisterPushToken(ctx context.Context, userID string, pushToken *string) error {
	if pushToken != nil && strings.TrimSpace(*pushToken) == "" {
		pushToken = nil
	}
	return s.profiles.UpdatePushToken(ctx, userID, pushToken)
}
