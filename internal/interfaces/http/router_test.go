package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekspresi/itm-sub002/internal/application/auth"
	"github.com/ekspresi/itm-sub002/internal/application/census"
	appreport "github.com/ekspresi/itm-sub002/internal/application/report"
	"github.com/ekspresi/itm-sub002/internal/application/usecase"
	"github.com/ekspresi/itm-sub002/internal/application/workflow"
	"github.com/ekspresi/itm-sub002/internal/infrastructure/memory"
	"github.com/ekspresi/itm-sub002/internal/infrastructure/pdf"
	apphttp "github.com/ekspresi/itm-sub002/internal/interfaces/http"
	"github.com/ekspresi/itm-sub002/pkg/money"
)

// ─── Servidor de prueba sobre el almacenamiento en memoria ───

const (
	adminEmail    = "admin@centro.test"
	adminPassword = "admin-password"
)

type server struct {
	app   *fiber.App
	token string
}

func newServer(t *testing.T) *server {
	t.Helper()
	return newServerWithConfig(t, apphttp.AppConfig("census-test"))
}

func newServerWithConfig(t *testing.T, cfg fiber.Config) *server {
	t.Helper()
	st := memory.NewStore()
	log := zerolog.Nop()

	authUC := auth.NewAuthUseCase(st.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	created, err := authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword, "Admin")
	require.NoError(t, err)
	require.True(t, created)

	locationUC := usecase.NewLocationUseCase(st.Locations(), st.Censuses())
	masterItemUC := usecase.NewMasterItemUseCase(st.MasterItems(), st.Locations())
	dashboardUC := usecase.NewDashboardUseCase(st.Locations(), st.MasterItems(), st.Censuses())
	registryUC := census.NewRegistryUseCase(st, st.Censuses(), st.Locations(), log)
	lineItemUC := census.NewLineItemUseCase(st, st.Censuses(), st.LineItems(), st.MasterItems(), log)
	aggregator := census.NewAggregator(st, st.Censuses(), log)
	renderer := pdf.NewMarotoReportGenerator("Centro Cultural", money.NewFormatter("en", "$"))
	reportUC := appreport.NewUseCase(st.Censuses(), st.LineItems(), st.Locations(), renderer, nil, log)

	app := fiber.New(cfg)
	app.Use(apphttp.RequestLogging(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(st.Users()),
		LocationUC:   locationUC,
		MasterItemUC: masterItemUC,
		DashboardUC:  dashboardUC,
		RegistryUC:   registryUC,
		LineItemUC:   lineItemUC,
		Aggregator:   aggregator,
		ReportUC:     reportUC,
		Workflow:     workflow.NewController(dashboardUC, locationUC, masterItemUC, registryUC, lineItemUC),
		JWTSecret:    testJWTSecret,
	})

	s := &server{app: app}
	s.token = s.login(t, adminEmail, adminPassword)
	return s
}

func (s *server) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func (s *server) do(t *testing.T, method, path, token string, in any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

// json ejecuta la petición como admin, verifica el status y decodifica la respuesta.
func (s *server) json(t *testing.T, method, path string, in any, wantStatus int) map[string]any {
	t.Helper()
	resp, body := s.do(t, method, path, s.token, in)
	require.Equal(t, wantStatus, resp.StatusCode, string(body))
	out := map[string]any{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return out
}

func (s *server) createLocation(t *testing.T, name string) string {
	t.Helper()
	out := s.json(t, http.MethodPost, "/api/locations", map[string]string{"name": name, "responsible_person": "Ana"}, http.StatusCreated)
	return out["id"].(string)
}

func (s *server) createCensus(t *testing.T, year int, locationID string) string {
	t.Helper()
	out := s.json(t, http.MethodPost, "/api/censuses", map[string]any{
		"year": year, "location_id": locationID, "committee": []string{"Ana", "Piotr"},
	}, http.StatusCreated)
	return out["id"].(string)
}

func (s *server) addItem(t *testing.T, censusID, name string, qty int, price string) map[string]any {
	t.Helper()
	return s.json(t, http.MethodPost, "/api/censuses/"+censusID+"/items", map[string]any{
		"name": name, "unit": "pcs", "quantity_found": qty, "price_per_unit": price,
	}, http.StatusCreated)
}

func assertAmount(t *testing.T, want string, got any) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "el monto debe serializarse como string, llegó %T", got)
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(s)), "esperado %s, obtenido %s", want, s)
}

// ─── Escenarios de punta a punta ───

func TestE2E_TotalDelCensoSigueLasLineas(t *testing.T) {
	s := newServer(t)
	hall := s.createLocation(t, "Main Hall")
	id := s.createCensus(t, 2025, hall)

	// Escenario A
	first := s.addItem(t, id, "Chair", 10, "25.00")
	assertAmount(t, "250.00", first["census_total"])
	got := s.json(t, http.MethodGet, "/api/censuses/"+id, nil, http.StatusOK)
	assertAmount(t, "250.00", got["total_value"])
	assert.Equal(t, false, got["total_stale"])

	// Escenario B
	second := s.addItem(t, id, "Table", 2, "99.99")
	assertAmount(t, "449.98", second["census_total"])

	// Escenario C
	firstID := first["item"].(map[string]any)["id"].(string)
	deleted := s.json(t, http.MethodDelete, "/api/censuses/"+id+"/items/"+firstID, nil, http.StatusOK)
	assertAmount(t, "199.98", deleted["census_total"])

	got = s.json(t, http.MethodGet, "/api/censuses/"+id, nil, http.StatusOK)
	assertAmount(t, "199.98", got["total_value"])

	items := s.json(t, http.MethodGet, "/api/censuses/"+id+"/items", nil, http.StatusOK)
	assert.Len(t, items["items"], 1)
	assertAmount(t, "199.98", items["total"])
}

func TestE2E_EditarLinea_RecalculaTotal(t *testing.T) {
	s := newServer(t)
	id := s.createCensus(t, 2025, s.createLocation(t, "Main Hall"))
	line := s.addItem(t, id, "Chair", 10, "25.00")
	lineID := line["item"].(map[string]any)["id"].(string)

	out := s.json(t, http.MethodPut, "/api/censuses/"+id+"/items/"+lineID, map[string]any{
		"name": "Chair", "quantity_found": 8, "price_per_unit": "25.00",
	}, http.StatusOK)
	assertAmount(t, "200", out["census_total"])

	out = s.json(t, http.MethodPost, "/api/censuses/"+id+"/recompute", nil, http.StatusOK)
	assertAmount(t, "200", out["total_value"])
}

func TestE2E_LineaInvalida_Retorna400(t *testing.T) {
	s := newServer(t)
	id := s.createCensus(t, 2025, s.createLocation(t, "Main Hall"))

	out := s.json(t, http.MethodPost, "/api/censuses/"+id+"/items", map[string]any{
		"name": "Chair", "quantity_found": -1, "price_per_unit": "1",
	}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])

	out = s.json(t, http.MethodPost, "/api/censuses/no-existe/items", map[string]any{
		"name": "Chair", "quantity_found": 1, "price_per_unit": "1",
	}, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", out["code"])
}

func TestE2E_ReglasDelCuerpo_Retornan400(t *testing.T) {
	s := newServer(t)
	hall := s.createLocation(t, "Main Hall")

	out := s.json(t, http.MethodPost, "/api/censuses", map[string]any{"year": 0, "location_id": hall}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["message"], "year")

	out = s.json(t, http.MethodPost, "/api/locations", map[string]string{"name": ""}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["message"], "name")

	out = s.json(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "no-es-un-email", "password": "corta", "role": "root",
	}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])
	for _, field := range []string{"email", "password", "role"} {
		assert.Contains(t, out["message"], field)
	}

	out = s.json(t, http.MethodPatch, "/api/users/x/status", map[string]string{"status": "borrado"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])

	req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_BODY", body["code"])
}

// Escenario D
func TestE2E_ResumenAnual_TotalGeneral(t *testing.T) {
	s := newServer(t)
	a := s.createCensus(t, 2024, s.createLocation(t, "Main Hall"))
	b := s.createCensus(t, 2024, s.createLocation(t, "Basement Storage"))
	s.addItem(t, a, "Projector", 1, "100.00")
	s.addItem(t, b, "Piano", 1, "250.50")

	out := s.json(t, http.MethodGet, "/api/reports/yearly/2024", nil, http.StatusOK)
	assertAmount(t, "350.50", out["grand_total"])
	assert.Len(t, out["rows"], 2)

	list := s.json(t, http.MethodGet, "/api/censuses?year=2024", nil, http.StatusOK)
	assertAmount(t, "350.50", list["grand_total"])
}

func TestAppConfig_Immutable(t *testing.T) {
	assert.True(t, apphttp.AppConfig("census").Immutable)
}

// Los ids de ruta se guardan en el almacén en memoria; sin Immutable fasthttp recicla el buffer.
func TestE2E_IdsDeRutaSobrevivenEntrePeticiones(t *testing.T) {
	for name, cfg := range map[string]fiber.Config{
		"immutable": apphttp.AppConfig("census-test"),
		"zero-copy": {},
	} {
		t.Run(name, func(t *testing.T) {
			s := newServerWithConfig(t, cfg)
			a := s.createCensus(t, 2024, s.createLocation(t, "Main Hall"))
			b := s.createCensus(t, 2024, s.createLocation(t, "Basement Storage"))
			s.addItem(t, a, "Projector", 1, "100.00")
			s.addItem(t, b, "Piano", 1, "250.50")
			s.json(t, http.MethodPost, "/api/censuses/"+a+"/recompute", nil, http.StatusOK)

			got := s.json(t, http.MethodGet, "/api/censuses/"+a, nil, http.StatusOK)
			assertAmount(t, "100.00", got["total_value"])
			items := s.json(t, http.MethodGet, "/api/censuses/"+b+"/items", nil, http.StatusOK)
			assert.Len(t, items["items"], 1)

			out := s.json(t, http.MethodGet, "/api/reports/yearly/2024", nil, http.StatusOK)
			assert.Len(t, out["rows"], 2)
			assertAmount(t, "350.50", out["grand_total"])
		})
	}
}

func TestE2E_ResumenAnualSinCensos_RetornaNoData(t *testing.T) {
	s := newServer(t)

	out := s.json(t, http.MethodGet, "/api/reports/yearly/1999", nil, http.StatusNotFound)
	assert.Equal(t, "NO_DATA", out["code"])

	out = s.json(t, http.MethodGet, "/api/reports/yearly/1999/pdf", nil, http.StatusNotFound)
	assert.Equal(t, "NO_DATA", out["code"])
}

// Escenario E
func TestE2E_UbicacionYaCensada_NoSeOfreceNiSeDuplica(t *testing.T) {
	s := newServer(t)
	hall := s.createLocation(t, "Main Hall")
	storage := s.createLocation(t, "Basement Storage")
	s.createCensus(t, 2025, hall)

	out := s.json(t, http.MethodGet, "/api/censuses/available-locations?year=2025", nil, http.StatusOK)
	ids := []string{}
	for _, it := range out["items"].([]any) {
		ids = append(ids, it.(map[string]any)["id"].(string))
	}
	assert.Equal(t, []string{storage}, ids)

	out = s.json(t, http.MethodPost, "/api/censuses", map[string]any{"year": 2025, "location_id": hall}, http.StatusConflict)
	assert.Equal(t, "ALREADY_CENSUSED", out["code"])

	// otro año sí está disponible
	out = s.json(t, http.MethodGet, "/api/censuses/available-locations?year=2026", nil, http.StatusOK)
	assert.Len(t, out["items"], 2)
}

func TestE2E_ReportePDF(t *testing.T) {
	s := newServer(t)
	id := s.createCensus(t, 2025, s.createLocation(t, "Main Hall"))
	s.addItem(t, id, "Chair", 10, "25.00")

	rep := s.json(t, http.MethodGet, "/api/censuses/"+id+"/report", nil, http.StatusOK)
	assertAmount(t, "250", rep["grand_total"])

	resp, body := s.do(t, http.MethodGet, "/api/censuses/"+id+"/report/pdf", s.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestE2E_BorrarCenso_SoloAdminYBorraLineas(t *testing.T) {
	s := newServer(t)
	hall := s.createLocation(t, "Main Hall")
	id := s.createCensus(t, 2025, hall)
	s.addItem(t, id, "Chair", 1, "1")

	s.json(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "staff@centro.test", "password": "staff-password", "role": "staff",
	}, http.StatusCreated)
	staff := s.login(t, "staff@centro.test", "staff-password")

	resp, _ := s.do(t, http.MethodDelete, "/api/censuses/"+id, staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// la ubicación no se puede borrar mientras tenga censo
	s.json(t, http.MethodDelete, "/api/locations/"+hall, nil, http.StatusConflict)

	s.json(t, http.MethodDelete, "/api/censuses/"+id, nil, http.StatusNoContent)
	s.json(t, http.MethodGet, "/api/censuses/"+id+"/items", nil, http.StatusNotFound)
	s.json(t, http.MethodDelete, "/api/locations/"+hall, nil, http.StatusNoContent)
}

func TestE2E_Sugerencias(t *testing.T) {
	s := newServer(t)
	hall := s.createLocation(t, "Main Hall")
	item := s.json(t, http.MethodPost, "/api/master-items", map[string]any{
		"name": "Chair", "unit": "pcs", "current_location_id": hall, "purchase_value": "25.00",
	}, http.StatusCreated)
	id := s.createCensus(t, 2025, hall)

	out := s.json(t, http.MethodGet, "/api/censuses/"+id+"/suggestions", nil, http.StatusOK)
	assert.Len(t, out["items"], 1)

	added := s.json(t, http.MethodPost, "/api/censuses/"+id+"/suggestions/"+item["id"].(string), nil, http.StatusCreated)
	assertAmount(t, "25", added["census_total"])

	out = s.json(t, http.MethodGet, "/api/censuses/"+id+"/suggestions", nil, http.StatusOK)
	assert.Len(t, out["items"], 0)
}

func TestE2E_Navegacion(t *testing.T) {
	s := newServer(t)
	id := s.createCensus(t, 2025, s.createLocation(t, "Main Hall"))

	out := s.json(t, http.MethodPost, "/api/workflow/navigate", map[string]any{
		"state":  map[string]any{"view": "censuses", "year": 2025},
		"action": map[string]any{"type": "open_census", "census_id": id},
	}, http.StatusOK)
	state := out["state"].(map[string]any)
	assert.Equal(t, "census_details", state["view"])
	data := out["data"].(map[string]any)
	assert.Equal(t, id, data["census"].(map[string]any)["id"])

	out = s.json(t, http.MethodPost, "/api/workflow/navigate", map[string]any{
		"state":  state,
		"action": map[string]any{"type": "back"},
	}, http.StatusOK)
	assert.Equal(t, "censuses", out["state"].(map[string]any)["view"])

	// acción no permitida desde el dashboard
	out = s.json(t, http.MethodPost, "/api/workflow/navigate", map[string]any{
		"action": map[string]any{"type": "open_census", "census_id": id},
	}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestE2E_AuthYSalud(t *testing.T) {
	s := newServer(t)

	resp, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "ok"))

	resp, _ = s.do(t, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	me := s.json(t, http.MethodGet, "/api/auth/me", nil, http.StatusOK)
	assert.Equal(t, adminEmail, me["email"])
	assert.Equal(t, "admin", me["role"])

	s.json(t, http.MethodPost, "/api/auth/logout", nil, http.StatusNoContent)

	dash := s.json(t, http.MethodGet, "/api/dashboard?year=2025", nil, http.StatusOK)
	assert.EqualValues(t, 2025, dash["year"])
}

func TestE2E_UsuarioDesactivado_NoPuedeIniciarSesion(t *testing.T) {
	s := newServer(t)
	user := s.json(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "staff@centro.test", "password": "staff-password",
	}, http.StatusCreated)
	assert.Equal(t, "staff", user["role"])

	list := s.json(t, http.MethodGet, "/api/users", nil, http.StatusOK)
	assert.EqualValues(t, 2, list["total"])

	s.json(t, http.MethodPatch, "/api/users/"+user["id"].(string)+"/status", map[string]string{"status": "inactive"}, http.StatusOK)

	resp, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "staff@centro.test", "password": "staff-password"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, string(body))
}
