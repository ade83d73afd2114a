package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workout/internal/category/models"
)

type categoryRow struct {
	ID         int64     `db:"pk_id"`
	ExternalID uuid.UUID `db:"external_id"`
	Name       string    `db:"nome"`
}

func (r categoryRow) toModel() *models.Category {
	return &models.Category{ID: r.ID, ExternalID: r.ExternalID, Name: r.Name}
}

type categoryStore struct {
	q sqlx.ExtContext
}

func (s *categoryStore) Create(ctx context.Context, c *models.Category) error {
	const query = `INSERT INTO categorias (external_id, nome) VALUES ($1, $2) RETURNING pk_id`
	if err := sqlx.GetContext(ctx, s.q, &c.ID, query, c.ExternalID, c.Name); err != nil {
		return fmt.Errorf("insert categoria: %w", translate(err))
	}
	return nil
}

func (s *categoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	const query = `SELECT pk_id, external_id, nome FROM categorias WHERE pk_id = $1`
	var row categoryRow
	if err := sqlx.GetContext(ctx, s.q, &row, query, id); err != nil {
		return nil, fmt.Errorf("find categoria %d: %w", id, translate(err))
	}
	return row.toModel(), nil
}

func (s *categoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	const query = `SELECT pk_id, external_id, nome FROM categorias WHERE nome = $1`
	var row categoryRow
	if err := sqlx.GetContext(ctx, s.q, &row, query, name); err != nil {
		return nil, fmt.Errorf("find categoria by nome: %w", translate(err))
	}
	return row.toModel(), nil
}

func (s *categoryStore) List(ctx context.Context) ([]*models.Category, error) {
	const query = `SELECT pk_id, external_id, nome FROM categorias ORDER BY pk_id`
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query); err != nil {
		return nil, fmt.Errorf("list categorias: %w", translate(err))
	}
	out := make([]*models.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}
