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

	"workout/internal/audit"
	"workout/internal/category/models"
	"workout/internal/platform/metrics"
	"workout/internal/storage"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/sentinel"
	"workout/pkg/requestcontext"
)

// Service owns the category operations.
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
		tracer: otel.Tracer("workout/category"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a category. Names are unique by exact match.
func (s *Service) Create(ctx context.Context, name string) (*models.Category, error) {
	ctx, span := s.tracer.Start(ctx, "category.Create", trace.WithAttributes(attribute.String("categoria.nome", name)))
	defer span.End()

	c, err := models.NewCategory(uuid.New(), name)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeValidation, dErrors.MessageOf(err)))
	}

	err = s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		return stores.Categories.Create(ctx, c)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, s.fail(span, dErrors.New(dErrors.CodeAlreadyExists,
				fmt.Sprintf("Já existe uma categoria cadastrada com o nome: %s", name)))
		}
		return nil, s.fail(span, translate(err, "failed to create categoria"))
	}

	span.SetAttributes(attribute.Int64("categoria.id", c.ID))
	s.emit(ctx, audit.ActionCategoryCreated, c.ID)
	if s.metrics != nil {
		s.metrics.IncrementCategoriesCreated()
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Category, error) {
	ctx, span := s.tracer.Start(ctx, "category.Get", trace.WithAttributes(attribute.Int64("categoria.id", id)))
	defer span.End()

	var c *models.Category
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		c, err = stores.Categories.FindByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.fail(span, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("Categoria não encontrada com id: %d", id)))
		}
		return nil, s.fail(span, translate(err, "failed to load categoria"))
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Category, error) {
	ctx, span := s.tracer.Start(ctx, "category.List")
	defer span.End()

	var out []*models.Category
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		out, err = stores.Categories.List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(span, translate(err, "failed to list categorias"))
	}
	span.SetAttributes(attribute.Int("categorias.count", len(out)))
	return out, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, id int64) {
	requestID := requestcontext.RequestID(ctx)
	s.logger.InfoContext(ctx, string(action),
		"categoria_id", id,
		"request_id", requestID,
		"log_type", "audit",
	)
	if s.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(action, audit.EntityCategory, id, requestID, requestcontext.Now(ctx))
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

// translate keeps domain errors raised by the unit of work and classifies the rest.
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
