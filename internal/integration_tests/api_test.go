//go:build integration

package integration

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	athletehandler "workout/internal/athlete/handler"
	athleteservice "workout/internal/athlete/service"
	"workout/internal/audit"
	categoryhandler "workout/internal/category/handler"
	categoryservice "workout/internal/category/service"
	"workout/internal/health"
	"workout/internal/platform/metrics"
	platformredis "workout/internal/platform/redis"
	"workout/internal/storage/cache"
	"workout/internal/storage/postgres"
	centerhandler "workout/internal/trainingcenter/handler"
	centerservice "workout/internal/trainingcenter/service"
	httptransport "workout/internal/transport/http"
	"workout/pkg/testutil"
	"workout/pkg/testutil/containers"
)

// APISuite drives the full HTTP stack on Postgres with the Redis lookup cache.
type APISuite struct {
	suite.Suite
	ctx      context.Context
	pg       *containers.PostgresContainer
	redis    *containers.RedisContainer
	router   http.Handler
	recorder *audit.Recorder
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	s.ctx = context.Background()
	mgr := containers.GetManager()
	s.pg = mgr.GetPostgres(s.T())
	s.redis = mgr.GetRedis(s.T())
}

func (s *APISuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx))
	s.Require().NoError(s.redis.FlushAll(s.ctx))

	logger := slog.New(slog.DiscardHandler)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s.recorder = audit.NewRecorder()

	store := postgres.New(s.pg.DB, 5*time.Second)
	client := platformredis.Wrap(s.redis.Client)
	uow := cache.New(store, client, cache.WithLogger(logger), cache.WithMetrics(m))

	s.router = httptransport.NewRouter(httptransport.Config{Logger: logger, Metrics: m, Gatherer: reg},
		health.New(logger, health.WithChecker("postgres", store), health.WithChecker("redis", client)),
		categoryhandler.New(categoryservice.New(uow, categoryservice.WithAuditPublisher(s.recorder)), logger),
		centerhandler.New(centerservice.New(uow, centerservice.WithAuditPublisher(s.recorder)), logger),
		athletehandler.New(athleteservice.New(uow, athleteservice.WithAuditPublisher(s.recorder)), logger),
	)
}

func (s *APISuite) post(path string, body any) (int, string) {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, path, body))
	return rr.Code, rr.Body.String()
}

func (s *APISuite) athleteBody(cpf, categoria string) map[string]any {
	return map[string]any{
		"nome": "João Silva", "cpf": cpf, "idade": 28, "peso": 75.5, "altura": 1.78, "sexo": "M",
		"categoria":          map[string]string{"nome": categoria},
		"centro_treinamento": map[string]string{"nome": "CT King"},
	}
}

func (s *APISuite) TestRegistrationFlow() {
	code, body := s.post("/categorias", map[string]string{"nome": "Scale"})
	s.Require().Equal(http.StatusCreated, code, body)
	s.Contains(body, `"id":1`)

	code, body = s.post("/categorias", map[string]string{"nome": "Scale"})
	s.Equal(http.StatusSeeOther, code)
	s.Contains(body, "Já existe uma categoria cadastrada com o nome: Scale")

	code, body = s.post("/centros_treinamento", map[string]string{"nome": "CT King", "endereco": "Rua X", "proprietario": "Marcos"})
	s.Require().Equal(http.StatusCreated, code, body)

	code, body = s.post("/atletas", s.athleteBody("12345678909", "Scale"))
	s.Require().Equal(http.StatusCreated, code, body)

	code, body = s.post("/atletas", s.athleteBody("12345678909", "Scale"))
	s.Equal(http.StatusSeeOther, code)
	s.Contains(body, "Já existe um atleta cadastrado com o cpf: 12345678909")

	code, body = s.post("/atletas", s.athleteBody("12345678909", "Elite"))
	s.Equal(http.StatusBadRequest, code)
	s.Contains(body, "Categoria Elite não encontrada")

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/atletas?cpf=123.456.789-09"))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `"total":1`)

	s.Equal([]audit.Action{
		audit.ActionCategoryCreated,
		audit.ActionTrainingCenterCreated,
		audit.ActionAthleteCreated,
	}, s.recorder.Actions())
}

func (s *APISuite) TestReadiness() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz/ready"))
	s.Equal(http.StatusOK, rr.Code, rr.Body.String())
}
