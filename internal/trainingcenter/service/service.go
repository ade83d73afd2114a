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
	"workout/internal/platform/metrics"
	"workout/internal/storage"
	"workout/internal/trainingcenter/models"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/sentinel"
	"workout/pkg/requestcontext"
)

type CreateParams struct {
	Name    string
	Address string
	Owner   string
}

// Service owns the training center operations.
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
		tracer: otel.Tracer("workout/trainingcenter"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*models.TrainingCenter, error) {
	ctx, span := s.tracer.Start(ctx, "trainingcenter.Create",
		trace.WithAttributes(attribute.String("centro_treinamento.nome", p.Name)))
	defer span.End()

	tc, err := models.NewTrainingCenter(uuid.New(), p.Name, p.Address, p.Owner)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeValidation, dErrors.MessageOf(err)))
	}

	err = s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		return stores.TrainingCenters.Create(ctx, tc)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, s.fail(span, dErrors.New(dErrors.CodeAlreadyExists,
				fmt.Sprintf("Já existe um centro de treinamento cadastrado com o nome: %s", p.Name)))
		}
		return nil, s.fail(span, translate(err, "failed to create centro_treinamento"))
	}

	span.SetAttributes(attribute.Int64("centro_treinamento.id", tc.ID))
	s.emit(ctx, tc.ID)
	if s.metrics != nil {
		s.metrics.IncrementTrainingCentersCreated()
	}
	return tc, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.TrainingCenter, error) {
	ctx, span := s.tracer.Start(ctx, "trainingcenter.Get",
		trace.WithAttributes(attribute.Int64("centro_treinamento.id", id)))
	defer span.End()

	var tc *models.TrainingCenter
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		tc, err = stores.TrainingCenters.FindByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.fail(span, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("Centro de treinamento não encontrado com id: %d", id)))
		}
		return nil, s.fail(span, translate(err, "failed to load centro_treinamento"))
	}
	return tc, nil
}

func (s *Service) List(ctx context.Context) ([]*models.TrainingCenter, error) {
	ctx, span := s.tracer.Start(ctx, "trainingcenter.List")
	defer span.End()

	var out []*models.TrainingCenter
	err := s.uow.RunInTx(ctx, func(stores storage.Stores) error {
		var err error
		out, err = stores.TrainingCenters.List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(span, translate(err, "failed to list centros_treinamento"))
	}
	return out, nil
}

func (s *Service) emit(ctx context.Context, id int64) {
	requestID := requestcontext.RequestID(ctx)
	s.logger.InfoContext(ctx, string(audit.ActionTrainingCenterCreated),
		"centro_treinamento_id", id,
		"request_id", requestID,
		"log_type", "audit",
	)
	if s.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(audit.ActionTrainingCenterCreated, audit.EntityTrainingCenter, id, requestID, requestcontext.Now(ctx))
	if err := s.auditPublisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish audit event",
			"action", string(audit.ActionTrainingCenterCreated),
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
