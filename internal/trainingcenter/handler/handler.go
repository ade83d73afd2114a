package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workout/internal/trainingcenter/models"
	"workout/internal/trainingcenter/service"
	"workout/pkg/platform/httputil"
	"workout/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, p service.CreateParams) (*models.TrainingCenter, error)
	Get(ctx context.Context, id int64) (*models.TrainingCenter, error)
	List(ctx context.Context) ([]*models.TrainingCenter, error)
}

// Handler serves /centros_treinamento.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/centros_treinamento", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTrainingCenterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tc, err := h.service.Create(ctx, req.params())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create centro_treinamento",
			"request_id", requestID,
			"nome", req.Nome,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toTrainingCenterResponse(tc))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list centros_treinamento",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTrainingCenterResponses(list))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tc, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTrainingCenterResponse(tc))
}
