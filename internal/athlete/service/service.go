package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"workout/internal/athlete/models"
	"workout/internal/audit"
	"workout/internal/cpf"
	"workout/internal/platform/metrics"
	"workout/internal/storage"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/pagination"
	"workout/pkg/platform/sentinel"
	"workout/pkg/requestcontext"
)

// CreateParams is a registration request. CPF may carry punctuation; the
// category and training center are referenced by name.
type CreateParams struct {
	Name               string
	CPF                string
	Age                int
	Weight             float64
	Height             float64
	Sex                models.Sex
	CategoryName       string
	TrainingCenterName string
}

// Service owns the athlete operations.
type Service struct {
	uow            storage.UnitOfWork
	logger         *slog.Logger
	auditPublisher audit.Publisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(uow storage.UnitOfWork, opts ...Option) *Service {
	s := &Service{
		uow:    uow,
		logger: slog.Default(),
		tracer: otel.Tracer("workout/athlete"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers an athlete.
//
// Checks run in a fixed order so the first failure wins: category lookup,
// training center lookup, CPF checksum, then the CPF uniqueness enforced by
// the store.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Athlete, error) {
	ctx, span := s.tracer.Start(ctx, "athlete.Create", trace.WithAttributes(
		attribute.String("categoria.nome", p.CategoryName),
		attribute.String("centro_treinamento.nome", p.TrainingCenterName),
	))
	defer span.End()

	var athlete *models.Athlete
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		category, err := stores.Categories.FindByName(ctx, p.CategoryName)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeReferenceNotFound,
					fmt.Sprintf("Categoria %s não encontrada", p.CategoryName))
			}
			return err
		}
		center, err := stores.TrainingCenters.FindByName(ctx, p.TrainingCenterName)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeReferenceNotFound,
					fmt.Sprintf("Centro de treinamento %s não encontrado", p.TrainingCenterName))
			}
			return err
		}

		normalized, err := cpf.Validate(p.CPF)
		if err != nil {
			return dErrors.Field("cpf", err.Error())
		}

		athlete, err = models.NewAthlete(models.NewAthleteParams{
			ExternalID:         uuid.New(),
			Name:               p.Name,
			CPF:                normalized,
			Age:                p.Age,
			Weight:             p.Weight,
			Height:             p.Height,
			Sex:                p.Sex,
			CategoryID:         category.ID,
			CategoryName:       category.Name,
			TrainingCenterID:   center.ID,
			TrainingCenterName: center.Name,
			CreatedAt:          requestcontext.Now(ctx).UTC(),
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, dErrors.MessageOf(err))
		}

		if err := stores.Athletes.Create(ctx, athlete); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				return dErrors.New(dErrors.CodeAlreadyExists,
					fmt.Sprintf("Já existe um atleta cadastrado com o cpf: %s", normalized))
			case errors.Is(err, sentinel.ErrReferenceMissing):
				return dErrors.Wrap(err, dErrors.CodeReferenceNotFound, "Categoria ou centro de treinamento não encontrado")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(span, translate(err, "failed to create atleta"))
	}

	span.SetAttributes(attribute.Int64("atleta.id", athlete.ID))
	s.emit(ctx, audit.ActionAthleteCreated, athlete.ID)
	if s.metrics != nil {
		s.metrics.IncrementAthletesCreated()
	}
	return athlete, nil
}

// List returns one page of athletes matching filter, ordered by id.
func (s *Service) List(ctx context.Context, filter models.Filter, page pagination.Params) (pagination.Page[*models.Athlete], error) {
	ctx, span := s.tracer.Start(ctx, "athlete.List", trace.WithAttributes(
		attribute.Int("page", page.Page),
		attribute.Int("size", page.Size),
	))
	defer span.End()

	if filter.CPF != "" {
		filter.CPF = cpf.Normalize(filter.CPF)
		if len(filter.CPF) != cpf.Length {
			// No stored CPF can match a value that is not 11 digits.
			return pagination.New[*models.Athlete](nil, 0, page), nil
		}
	}

	var items []*models.Athlete
	var total int
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		items, total, err = stores.Athletes.List(ctx, filter, page)
		return err
	})
	if err != nil {
		return pagination.Page[*models.Athlete]{}, s.fail(span, translate(err, "failed to list atletas"))
	}
	span.SetAttributes(attribute.Int("total", total))
	return pagination.New(items, total, page), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Athlete, error) {
	ctx, span := s.tracer.Start(ctx, "athlete.Get", trace.WithAttributes(attribute.Int64("atleta.id", id)))
	defer span.End()

	var athlete *models.Athlete
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		athlete, err = stores.Athletes.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(span, translate(notFound(err, id), "failed to load atleta"))
	}
	return athlete, nil
}

// Update applies patch to the athlete. An empty patch returns the athlete unchanged.
func (s *Service) Update(ctx context.Context, id int64, patch models.Patch) (*models.Athlete, error) {
	ctx, span := s.tracer.Start(ctx, "athlete.Update", trace.WithAttributes(attribute.Int64("atleta.id", id)))
	defer span.End()

	var athlete *models.Athlete
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		athlete, err = stores.Athletes.FindByID(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := athlete.Apply(patch); err != nil {
			return err
		}
		return notFound(stores.Athletes.Update(ctx, athlete), id)
	})
	if err != nil {
		return nil, s.fail(span, translate(err, "failed to update atleta"))
	}

	if !patch.IsEmpty() {
		s.emit(ctx, audit.ActionAthleteUpdated, id)
		if s.metrics != nil {
			s.metrics.IncrementAthletesUpdated()
		}
	}
	return athlete, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "athlete.Delete", trace.WithAttributes(attribute.Int64("atleta.id", id)))
	defer span.End()

	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		return notFound(stores.Athletes.Delete(ctx, id), id)
	})
	if err != nil {
		return s.fail(span, translate(err, "failed to delete atleta"))
	}

	s.emit(ctx, audit.ActionAthleteDeleted, id)
	if s.metrics != nil {
		s.metrics.IncrementAthletesDeleted()
	}
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, id int64) {
	requestID := requestcontext.RequestID(ctx)
	s.logger.InfoContext(ctx, string(action),
		"atleta_id", id,
		"request_id", requestID,
		"log_type", "audit",
	)
	if s.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(action, audit.EntityAthlete, id, requestID, requestcontext.Now(ctx))
	if err := s.auditPublisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish audit event",
			"action", string(action),
			"request_id", requestID,
			"error", err,
		)
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func notFound(err error, id int64) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Atleta não encontrado com id: %d", id))
	}
	return err
}

func translate(err error, message string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Serviço temporariamente indisponível")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}
