package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workout/internal/athlete/models"
	"workout/pkg/platform/pagination"
	"workout/pkg/platform/sentinel"
)

const athleteSelect = `
	SELECT a.pk_id, a.external_id, a.nome, a.cpf, a.idade, a.peso, a.altura, a.sexo, a.created_at,
	       a.categoria_id, c.nome AS categoria_nome,
	       a.centro_treinamento_id, ct.nome AS centro_treinamento_nome
	FROM atletas a
	JOIN categorias c ON c.pk_id = a.categoria_id
	JOIN centros_treinamento ct ON ct.pk_id = a.centro_treinamento_id`

// ($1 = '' OR ...) keeps one statement for every filter combination.
const athleteFilter = `
	WHERE ($1::text = '' OR a.nome ILIKE '%' || $1::text || '%' ESCAPE '\')
	  AND ($2::text = '' OR a.cpf = $2::text)`

type athleteRow struct {
	ID                 int64     `db:"pk_id"`
	ExternalID         uuid.UUID `db:"external_id"`
	Name               string    `db:"nome"`
	CPF                string    `db:"cpf"`
	Age                int       `db:"idade"`
	Weight             float64   `db:"peso"`
	Height             float64   `db:"altura"`
	Sex                string    `db:"sexo"`
	CreatedAt          time.Time `db:"created_at"`
	CategoryID         int64     `db:"categoria_id"`
	CategoryName       string    `db:"categoria_nome"`
	TrainingCenterID   int64     `db:"centro_treinamento_id"`
	TrainingCenterName string    `db:"centro_treinamento_nome"`
}

func (r athleteRow) toModel() *models.Athlete {
	return &models.Athlete{
		ID:                 r.ID,
		ExternalID:         r.ExternalID,
		Name:               r.Name,
		CPF:                r.CPF,
		Age:                r.Age,
		Weight:             r.Weight,
		Height:             r.Height,
		Sex:                models.Sex(r.Sex),
		CreatedAt:          r.CreatedAt.UTC(),
		CategoryID:         r.CategoryID,
		CategoryName:       r.CategoryName,
		TrainingCenterID:   r.TrainingCenterID,
		TrainingCenterName: r.TrainingCenterName,
	}
}

type athleteStore struct {
	q sqlx.ExtContext
}

func (s *athleteStore) Create(ctx context.Context, a *models.Athlete) error {
	const query = `
		INSERT INTO atletas (external_id, nome, cpf, idade, peso, altura, sexo, created_at,
		                     categoria_id, centro_treinamento_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING pk_id`
	err := sqlx.GetContext(ctx, s.q, &a.ID, query,
		a.ExternalID, a.Name, a.CPF, a.Age, a.Weight, a.Height, string(a.Sex), a.CreatedAt,
		a.CategoryID, a.TrainingCenterID,
	)
	if err != nil {
		return fmt.Errorf("insert atleta: %w", translate(err))
	}
	return nil
}

func (s *athleteStore) FindByID(ctx context.Context, id int64) (*models.Athlete, error) {
	var row athleteRow
	if err := sqlx.GetContext(ctx, s.q, &row, athleteSelect+` WHERE a.pk_id = $1`, id); err != nil {
		return nil, fmt.Errorf("find atleta %d: %w", id, translate(err))
	}
	return row.toModel(), nil
}

func (s *athleteStore) List(ctx context.Context, filter models.Filter, page pagination.Params) ([]*models.Athlete, int, error) {
	name := escapeLike(filter.Name)

	var total int
	countQuery := `SELECT COUNT(*) FROM atletas a` + athleteFilter
	if err := sqlx.GetContext(ctx, s.q, &total, countQuery, name, filter.CPF); err != nil {
		return nil, 0, fmt.Errorf("count atletas: %w", translate(err))
	}
	if total == 0 || page.Offset() >= total {
		return []*models.Athlete{}, total, nil
	}

	var rows []athleteRow
	listQuery := athleteSelect + athleteFilter + ` ORDER BY a.pk_id LIMIT $3 OFFSET $4`
	if err := sqlx.SelectContext(ctx, s.q, &rows, listQuery, name, filter.CPF, page.Size, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list atletas: %w", translate(err))
	}
	out := make([]*models.Athlete, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, total, nil
}

func (s *athleteStore) Update(ctx context.Context, a *models.Athlete) error {
	const query = `UPDATE atletas SET nome = $1, idade = $2 WHERE pk_id = $3`
	res, err := s.q.ExecContext(ctx, query, a.Name, a.Age, a.ID)
	if err != nil {
		return fmt.Errorf("update atleta %d: %w", a.ID, translate(err))
	}
	return requireAffected(res, a.ID)
}

func (s *athleteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM atletas WHERE pk_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete atleta %d: %w", id, translate(err))
	}
	return requireAffected(res, id)
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(res rowsAffecter, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("atleta %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
