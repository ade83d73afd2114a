package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workout/internal/storage/memory"
	"workout/internal/trainingcenter/service"
	"workout/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(memory.New(), service.WithLogger(logger))
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

var kingBody = map[string]string{
	"nome":         "CT King",
	"endereco":     "Rua X, Q02",
	"proprietario": "Marcos",
}

func TestCreateAndFetch(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/centros_treinamento", kingBody))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := testutil.UnmarshalResponse[TrainingCenterResponse](t, rr)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Rua X, Q02", created.Endereco)
	assert.Equal(t, "Marcos", created.Proprietario)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/centros_treinamento/1"))
	testutil.AssertStatusOK(t, rr)
	got := testutil.UnmarshalResponse[TrainingCenterResponse](t, rr)
	assert.Equal(t, *created, *got)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/centros_treinamento"))
	testutil.AssertStatusOK(t, rr)
	list := testutil.UnmarshalResponse[[]TrainingCenterResponse](t, rr)
	assert.Len(t, *list, 1)
}

func TestCreateDuplicate(t *testing.T) {
	router := newRouter(t)
	testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/centros_treinamento", kingBody))

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/centros_treinamento", kingBody))
	testutil.AssertStatus(t, rr, http.StatusSeeOther)
	assert.Contains(t, rr.Body.String(), "Já existe um centro de treinamento cadastrado com o nome: CT King")
}

func TestCreateReportsEveryInvalidField(t *testing.T) {
	router := newRouter(t)
	body := map[string]string{
		"nome":         "",
		"endereco":     strings.Repeat("r", 61),
		"proprietario": strings.Repeat("p", 31),
	}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/centros_treinamento", body))
	testutil.AssertValidationFields(t, rr, "nome", "endereco", "proprietario")
	assert.Equal(t, "Erro de validação nos dados fornecidos", testutil.UnmarshalErrorResponse(t, rr).Detail)
}

func TestGetErrors(t *testing.T) {
	router := newRouter(t)

	testutil.When(t, "the id is unknown", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/centros_treinamento/5"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
	testutil.When(t, "the id is not a number", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/centros_treinamento/um"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "validation_error")
	})
}
