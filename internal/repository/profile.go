package repository

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db Querier
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db Querier) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, email, password_hash, full_name, phone, address, user_type,
		is_admin, is_active, is_verified, location_lat, location_lng, push_token,
		created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.Address, &p.UserType,
		&p.IsAdmin, &p.IsActive, &p.IsVerified, &p.LocationLat, &p.LocationLng, &p.PushToken,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, phone, address, user_type,
			is_admin, is_active, is_verified, location_lat, location_lng, push_token,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.FullName, p.Phone, p.Address, p.UserType,
		p.IsAdmin, p.IsActive, p.IsVerified, p.LocationLat, p.LocationLng, p.PushToken,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("profile not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("profile not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return p, nil
}

// EmailExists checks if an email is already registered
func (r *ProfileRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// List retrieves all profiles, newest first
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// Update updates the self-service fields of a profile
func (r *ProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, phone = $2, address = $3, user_type = $4,
			location_lat = $5, location_lng = $6, updated_at = now()
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query,
		p.FullName, p.Phone, p.Address, p.UserType, p.LocationLat, p.LocationLng, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// UpdatePushToken updates the push token for a profile
func (r *ProfileRepository) UpdatePushToken(ctx context.Context, userID string, pushToken *string) error {
	query := `UPDATE profiles SET push_token = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, pushToken, userID)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}

// IsAdmin reads the is_admin flag straight from the row. Privilege checks
// always hit the database; the flag is never cached across requests.
func (r *ProfileRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	query := `SELECT is_admin FROM profiles WHERE id = $1`
	var isAdmin bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&isAdmin)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, fmt.Errorf("profile not found: %w", err)
		}
		return false, fmt.Errorf("failed to check admin flag: %w", err)
	}
	return isAdmin, nil
}
