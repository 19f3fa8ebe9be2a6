package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ncwcc-portal/internal/models"
)

type FAQRepository struct {
	DB *pgxpool.Pool
}

func NewFAQRepository(db *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{DB: db}
}

// ListPublished returns published FAQs ordered for display
func (r *FAQRepository) ListPublished(ctx context.Context) ([]models.FAQ, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, category, question, answer, sort_order, published, created_at, updated_at
		 FROM faqs WHERE published = true
		 ORDER BY category, sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer rows.Close()

	var faqs []models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Category, &f.Question, &f.Answer,
			&f.SortOrder, &f.Published, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// ListByCategory returns published FAQs for one category
func (r *FAQRepository) ListByCategory(ctx context.Context, category string) ([]models.FAQ, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, category, question, answer, sort_order, published, created_at, updated_at
		 FROM faqs WHERE published = true AND category = $1
		 ORDER BY sort_order, id`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs for %s: %w", category, err)
	}
	defer rows.Close()

	var faqs []models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Category, &f.Question, &f.Answer,
			&f.SortOrder, &f.Published, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// Categories returns the distinct published FAQ categories
func (r *FAQRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT category FROM faqs WHERE published = true ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faq categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
