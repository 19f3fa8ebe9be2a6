package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ncwcc-portal/internal/models"
)

type ContactRepository struct {
	DB *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{DB: db}
}

// Create stores a contact / quote request submission
func (r *ContactRepository) Create(ctx context.Context, sub *models.ContactSubmission) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO contact_submissions(name, email, phone, suburb, service_type, preferred_contact_method, message)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		sub.Name, sub.Email, sub.Phone, sub.Suburb, sub.ServiceType, sub.PreferredMethod, sub.Message,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store contact submission: %w", err)
	}
	return nil
}

// ListRecent returns the latest submissions, newest first
func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, phone, suburb, service_type, preferred_contact_method, message, created_at
		 FROM contact_submissions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.ContactSubmission
	for rows.Next() {
		var s models.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Suburb,
			&s.ServiceType, &s.PreferredMethod, &s.Message, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
