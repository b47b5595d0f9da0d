package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository/mocks"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/cadastro-clientes/internal/interfaces/http"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
	"github.com/jhoicas/cadastro-clientes/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testToday = time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return testToday }

type testEnv struct {
	app   *fiber.App
	store *memory.Store
}

// buildTestApp arma la aplicación completa sobre el store en memoria.
func buildTestApp(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	return testEnv{app: buildAppWith(t, store, store, nil), store: store}
}

func buildAppWith(t *testing.T, clients repository.ClientRepository, reports repository.ReportRepository, ping func(context.Context) error) *fiber.App {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	app, err := apphttp.NewApp(apphttp.RouterDeps{
		AppName:  "cadastro-test",
		ClientUC: usecase.NewClientUseCase(clients, clock, m),
		ReportUC: usecase.NewReportUseCase(reports, clock),
		Log:      logger.Nop(),
		Metrics:  m,
		Gatherer: reg,
		Ping:     ping,
	})
	require.NoError(t, err)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	return do(t, app, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return do(t, app, req)
}

func anaForm() url.Values {
	return url.Values{
		"nome":            {"Ana"},
		"cpf":             {"1234567890"},
		"data_nascimento": {"1990-05-20"},
		"renda_familiar":  {"1000.00"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRoot_RedirectsToClients(t *testing.T) {
	env := buildTestApp(t)
	resp, _ := get(t, env.app, "/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clients", resp.Header.Get("Location"))
}

func TestCreateClient_ListShowsBadge(t *testing.T) {
	env := buildTestApp(t)

	resp, _ := postForm(t, env.app, "/clients", anaForm())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clients", resp.Header.Get("Location"))
	assert.Equal(t, 1, env.store.Count())

	resp, body := get(t, env.app, "/clients")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, `badge-income badge-b`)
	assert.Contains(t, body, "R$ 1.000")
	assert.Contains(t, body, "/clients/1/edit")
	assert.NotEmpty(t, resp.Header.Get(apphttp.RequestIDHeader))
}

func TestListClients_SearchAndEmpty(t *testing.T) {
	env := buildTestApp(t)
	postForm(t, env.app, "/clients", anaForm())

	_, body := get(t, env.app, "/clients?q=zzz")
	assert.Contains(t, body, "Nenhum cliente encontrado.")
	assert.Contains(t, body, `value="zzz"`)

	_, body = get(t, env.app, "/clients?q=AN")
	assert.Contains(t, body, "Ana")
}

func TestCreateClient_ValidationRerendersForm(t *testing.T) {
	env := buildTestApp(t)

	form := anaForm()
	form.Set("cpf", "12345")
	form.Set("renda_familiar", "abc")
	resp, body := postForm(t, env.app, "/clients", form)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Informe 10 dígitos numéricos.")
	assert.Contains(t, body, "Valor inválido.")
	assert.Contains(t, body, `value="12345"`)
	assert.Contains(t, body, `value="abc"`)
	assert.Equal(t, 0, env.store.Count())
}

func TestCreateClient_DuplicateIDNumber(t *testing.T) {
	env := buildTestApp(t)
	postForm(t, env.app, "/clients", anaForm())

	form := anaForm()
	form.Set("nome", "Beatriz")
	resp, body := postForm(t, env.app, "/clients", form)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "CPF já cadastrado.")
	assert.Equal(t, 1, env.store.Count())
}

func TestNewClientForm(t *testing.T) {
	env := buildTestApp(t)
	resp, body := get(t, env.app, "/clients/new")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Novo Cliente")
	assert.Contains(t, body, `value="2026-10-14"`)
	assert.Contains(t, body, `action="/clients"`)
}

func TestEditClient(t *testing.T) {
	env := buildTestApp(t)
	postForm(t, env.app, "/clients", anaForm())

	resp, body := get(t, env.app, "/clients/1/edit")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Editar Cliente")
	assert.Contains(t, body, `value="1000.00"`)
	assert.Contains(t, body, `action="/clients/1/update"`)

	resp, _ = get(t, env.app, "/clients/99/edit")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, env.app, "/clients/abc/edit")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateClient_KeepsRegistrationDate(t *testing.T) {
	env := buildTestApp(t)
	form := anaForm()
	form.Set("data_cadastro", "2026-02-01")
	postForm(t, env.app, "/clients", form)

	upd := anaForm()
	upd.Set("nome", "Ana Lima")
	upd.Set("data_cadastro", "2026-10-14")
	resp, _ := postForm(t, env.app, "/clients/1/update", upd)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	c, err := env.store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", c.Name)
	assert.Equal(t, "2026-02-01", c.RegistrationDate.Format("2006-01-02"))
}

func TestUpdateClient_ValidationAndNotFound(t *testing.T) {
	env := buildTestApp(t)
	postForm(t, env.app, "/clients", anaForm())

	bad := anaForm()
	bad.Set("data_nascimento", "2026-10-15")
	resp, body := postForm(t, env.app, "/clients/1/update", bad)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Não pode ser futura.")

	resp, _ = postForm(t, env.app, "/clients/99/update", anaForm())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = postForm(t, env.app, "/clients/x/update", anaForm())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteClient(t *testing.T) {
	env := buildTestApp(t)
	postForm(t, env.app, "/clients", anaForm())

	resp, _ := postForm(t, env.app, "/clients/99/delete", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, 1, env.store.Count())

	resp, _ = postForm(t, env.app, "/clients/abc/delete", url.Values{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = postForm(t, env.app, "/clients/1/delete", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, 0, env.store.Count())
}

func TestReports(t *testing.T) {
	env := buildTestApp(t)
	postForm(t, env.app, "/clients", anaForm())

	resp, body := get(t, env.app, "/reports?period=all")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Média geral: R$ 1.000")
	assert.Contains(t, body, `<option value="all" selected>`)

	_, body = get(t, env.app, "/reports?period=bogus")
	assert.Contains(t, body, `<option value="month" selected>`)
}

func TestStorageFailure_Returns500(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockClientRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), "").Return(nil, errors.New("connection refused"))
	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().AverageIncome(gomock.Any()).Return(decimal.Zero, errors.New("connection refused"))

	app := buildAppWith(t, repo, reports, nil)

	resp, body := get(t, app, "/clients")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "Erro interno")
	assert.NotContains(t, body, "connection refused")

	resp, _ = get(t, app, "/reports")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestHealthMetricsStatic(t *testing.T) {
	env := buildTestApp(t)

	resp, body := get(t, env.app, "/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)

	postForm(t, env.app, "/clients", anaForm())
	resp, body = get(t, env.app, "/metrics")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "clients_created_total 1")
	assert.Contains(t, body, "http_requests_total")

	resp, body = get(t, env.app, "/static/app.css")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".badge-a")

	resp, _ = get(t, env.app, "/nao-existe")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth_StorageDown(t *testing.T) {
	store := memory.NewStore()
	app := buildAppWith(t, store, store, func(context.Context) error {
		return errors.New("dial tcp db.interno:5432: connection refused")
	})

	resp, body := get(t, app, "/health")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "unavailable")
	assert.NotContains(t, body, "db.interno")
	assert.NotContains(t, body, "connection refused")
}
