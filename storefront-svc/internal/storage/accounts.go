package storage

import (
	"context"
	"database/sql"
	"errors"

	"campus-storefront/storefront-svc/internal/domain"
)

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		user.ID, user.Email, user.PasswordHash, user.Role).Scan(&user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// GetProfile reports found=false when the user has no profile row yet.
func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	var p domain.Profile
	var birthDate sql.NullTime
	err := r.DB.QueryRowContext(ctx, `
		SELECT p.id, COALESCE(p.first_name, ''), COALESCE(p.last_name, ''), COALESCE(p.cedula_ruc, ''),
			COALESCE(p.phone, ''), COALESCE(p.gender, ''), p.birth_date,
			COALESCE(a.street_address, ''), COALESCE(a.reference, ''), p.updated_at
		FROM profiles p
		LEFT JOIN addresses a ON a.user_id = p.id
		WHERE p.id = $1`, userID).
		Scan(&p.UserID, &p.FirstName, &p.LastName, &p.CedulaRUC, &p.Phone, &p.Gender, &birthDate,
			&p.StreetAddress, &p.Reference, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, err
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	return p, true, nil
}

func (r *PostgresRepository) UpsertProfile(ctx context.Context, p domain.Profile) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var birthDate interface{}
	if p.BirthDate != nil {
		birthDate = *p.BirthDate
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (id, first_name, last_name, cedula_ruc, phone, gender, birth_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			cedula_ruc = EXCLUDED.cedula_ruc, phone = EXCLUDED.phone, gender = EXCLUDED.gender,
			birth_date = EXCLUDED.birth_date, updated_at = NOW()`,
		p.UserID, p.FirstName, p.LastName, p.CedulaRUC, p.Phone, p.Gender, birthDate); err != nil {
		return err
	}

	if p.StreetAddress != "" || p.Reference != "" {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO addresses (user_id, street_address, reference)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET street_address = EXCLUDED.street_address, reference = EXCLUDED.reference`,
			p.UserID, p.StreetAddress, p.Reference); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) HasRating(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ratings WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) InsertRating(ctx context.Context, rating *domain.Rating) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO ratings (user_id, score, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		rating.UserID, rating.Score, rating.Comment).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}
