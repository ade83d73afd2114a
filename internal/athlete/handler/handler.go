package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workout/internal/athlete/models"
	"workout/internal/athlete/service"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/httputil"
	"workout/pkg/platform/pagination"
	"workout/pkg/requestcontext"
)

// Service defines the athlete operations the handler needs.
type Service interface {
	Create(ctx context.Context, p service.CreateParams) (*models.Athlete, error)
	List(ctx context.Context, filter models.Filter, page pagination.Params) (pagination.Page[*models.Athlete], error)
	Get(ctx context.Context, id int64) (*models.Athlete, error)
	Update(ctx context.Context, id int64, patch models.Patch) (*models.Athlete, error)
	Delete(ctx context.Context, id int64) error
}

// Handler serves /atletas.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/atletas", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleCreate handles POST /atletas.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateAthleteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.Create(ctx, req.params())
	if err != nil {
		h.logFailure(ctx, "failed to create atleta", err,
			"categoria", req.Categoria.Nome,
			"centro_treinamento", req.CentroTreinamento.Nome,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "atleta created",
		"request_id", requestID,
		"atleta_id", a.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, toAthleteResponse(a))
}

// HandleList handles GET /atletas?nome=&cpf=&page=&size=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page, err := pagination.FromQuery(query)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter := models.Filter{Name: query.Get("nome"), CPF: query.Get("cpf")}

	result, err := h.service.List(ctx, filter, page)
	if err != nil {
		h.logFailure(ctx, "failed to list atletas", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSummaryPage(result))
}

// HandleGet handles GET /atletas/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.Get(ctx, id)
	if err != nil {
		h.logFailure(ctx, "failed to get atleta", err, "atleta_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAthleteResponse(a))
}

// HandleUpdate handles PATCH /atletas/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateAthleteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.Update(ctx, id, req.patch())
	if err != nil {
		h.logFailure(ctx, "failed to update atleta", err, "atleta_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAthleteResponse(a))
}

// HandleDelete handles DELETE /atletas/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logFailure(ctx, "failed to delete atleta", err, "atleta_id", id)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// logFailure logs internal errors at error level and client errors at info.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	args := append([]any{"request_id", requestcontext.RequestID(ctx), "error", err}, attrs...)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.InfoContext(ctx, msg, args...)
}
