package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workout/internal/trainingcenter/models"
)

const trainingCenterColumns = `pk_id, external_id, nome, endereco, proprietario`

type trainingCenterRow struct {
	ID         int64     `db:"pk_id"`
	ExternalID uuid.UUID `db:"external_id"`
	Name       string    `db:"nome"`
	Address    string    `db:"endereco"`
	Owner      string    `db:"proprietario"`
}

func (r trainingCenterRow) toModel() *models.TrainingCenter {
	return &models.TrainingCenter{
		ID:         r.ID,
		ExternalID: r.ExternalID,
		Name:       r.Name,
		Address:    r.Address,
		Owner:      r.Owner,
	}
}

type trainingCenterStore struct {
	q sqlx.ExtContext
}

func (s *trainingCenterStore) Create(ctx context.Context, tc *models.TrainingCenter) error {
	const query = `
		INSERT INTO centros_treinamento (external_id, nome, endereco, proprietario)
		VALUES ($1, $2, $3, $4)
		RETURNING pk_id`
	if err := sqlx.GetContext(ctx, s.q, &tc.ID, query, tc.ExternalID, tc.Name, tc.Address, tc.Owner); err != nil {
		return fmt.Errorf("insert centro_treinamento: %w", translate(err))
	}
	return nil
}

func (s *trainingCenterStore) FindByID(ctx context.Context, id int64) (*models.TrainingCenter, error) {
	query := `SELECT ` + trainingCenterColumns + ` FROM centros_treinamento WHERE pk_id = $1`
	var row trainingCenterRow
	if err := sqlx.GetContext(ctx, s.q, &row, query, id); err != nil {
		return nil, fmt.Errorf("find centro_treinamento %d: %w", id, translate(err))
	}
	return row.toModel(), nil
}

func (s *trainingCenterStore) FindByName(ctx context.Context, name string) (*models.TrainingCenter, error) {
	query := `SELECT ` + trainingCenterColumns + ` FROM centros_treinamento WHERE nome = $1`
	var row trainingCenterRow
	if err := sqlx.GetContext(ctx, s.q, &row, query, name); err != nil {
		return nil, fmt.Errorf("find centro_treinamento by nome: %w", translate(err))
	}
	return row.toModel(), nil
}

func (s *trainingCenterStore) List(ctx context.Context) ([]*models.TrainingCenter, error) {
	query := `SELECT ` + trainingCenterColumns + ` FROM centros_treinamento ORDER BY pk_id`
	var rows []trainingCenterRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query); err != nil {
		return nil, fmt.Errorf("list centros_treinamento: %w", translate(err))
	}
	out := make([]*models.TrainingCenter, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}
