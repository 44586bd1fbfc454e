package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/config"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/repository"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/routes"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "server-test-secret"

type testEnv struct {
	t   *testing.T
	app *fiber.App
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:          testSecret,
		CORSOrigins:        "*",
		LoginURL:           "/accounts/login/",
		RateLimitPerMinute: 1000,
		AppEnv:             "test",
	}
	for _, m := range mutate {
		m(cfg)
	}

	drilling := services.NewDrillingService(repository.NewMemoryRepository())
	app := New(cfg, routes.Handlers{
		Health: handlers.NewHealthHandler(drilling),
		Wells:  handlers.NewWellHandler(drilling),
		Layers: handlers.NewLayerHandler(drilling),
		Index:  handlers.NewIndexHandler(drilling),
	})
	return &testEnv{t: t, app: app}
}

func token(t *testing.T, userID uuid.UUID, email string, superuser bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":          userID.String(),
		"email":        email,
		"is_superuser": superuser,
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(method, path, tok string, body interface{}) (int, []byte) {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (e *testEnv) createWell(tok, name string) dto.WellResponse {
	e.t.Helper()
	status, body := e.do(http.MethodPost, "/api/wells/", tok, map[string]interface{}{
		"name": name, "area": "A", "structure": "S", "design_depth": 50.0,
	})
	require.Equal(e.t, http.StatusCreated, status, string(body))
	return decode[dto.WellResponse](e.t, body)
}

func (e *testEnv) createLayer(tok string, wellID uuid.UUID, from, to float64, lith string) dto.LayerResponse {
	e.t.Helper()
	status, body := e.do(http.MethodPost, "/api/layers/", tok, map[string]interface{}{
		"well": wellID.String(), "depth_from": from, "depth_to": to, "lithology": lith,
	})
	require.Equal(e.t, http.StatusCreated, status, string(body))
	return decode[dto.LayerResponse](e.t, body)
}

func TestDrillingLog_OwnershipScenario(t *testing.T) {
	env := newTestEnv(t)
	u := uuid.New()
	v := uuid.New()
	uTok := token(t, u, "u@example.com", false)
	vTok := token(t, v, "v@example.com", false)

	w1 := env.createWell(uTok, "W1")
	assert.Equal(t, u, w1.Owner)
	assert.Equal(t, "synced", w1.SyncStatus)
	assert.NotNil(t, w1.Layers)

	layer := env.createLayer(uTok, w1.ID, 0, 1.5, "sand")
	assert.Equal(t, 1.5, layer.Thickness)
	assert.Equal(t, "Песок", layer.LithologyDisplay)

	status, _ := env.do(http.MethodGet, "/api/layers/"+layer.ID.String()+"/", vTok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.do(http.MethodGet, "/api/wells/"+w1.ID.String()+"/", vTok, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := env.do(http.MethodGet, "/api/layers/well_layers/?well_id="+w1.ID.String(), uTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.LayerResponse](t, body), 1)

	status, body = env.do(http.MethodGet, "/api/layers/well_layers/", uTok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "well_id is required")

	status, body = env.do(http.MethodGet, "/api/layers/well_layers/?well_id="+w1.ID.String(), vTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]dto.LayerResponse](t, body))
}

func TestDrillingLog_ForeignLayerCreateForbidden(t *testing.T) {
	env := newTestEnv(t)
	uTok := token(t, uuid.New(), "u@example.com", false)
	vTok := token(t, uuid.New(), "v@example.com", false)

	w := env.createWell(uTok, "W")

	status, body := env.do(http.MethodPost, "/api/layers/", vTok, map[string]interface{}{
		"well": w.ID.String(), "depth_from": 0, "depth_to": 1, "lithology": "peat",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "no access to this well")

	status, body = env.do(http.MethodGet, "/api/wells/"+w.ID.String(), uTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.WellResponse](t, body).Layers)
}

func TestDrillingLog_OwnerInBodyIgnored(t *testing.T) {
	env := newTestEnv(t)
	u := uuid.New()
	uTok := token(t, u, "u@example.com", false)

	status, body := env.do(http.MethodPost, "/api/wells/", uTok, map[string]interface{}{
		"name": "W", "area": "A", "structure": "S", "design_depth": 10,
		"owner": uuid.New().String(), "sync_status": "pending",
	})
	require.Equal(t, http.StatusCreated, status)
	well := decode[dto.WellResponse](t, body)
	assert.Equal(t, u, well.Owner)
	assert.Equal(t, "synced", well.SyncStatus)
}

func TestDrillingLog_CascadeDeleteAndOrdering(t *testing.T) {
	env := newTestEnv(t)
	uTok := token(t, uuid.New(), "u@example.com", false)

	w := env.createWell(uTok, "W")
	deep := env.createLayer(uTok, w.ID, 5, 7, "loam")
	env.createLayer(uTok, w.ID, 0, 2, "prs")
	env.createLayer(uTok, w.ID, 2, 5, "sandy_loam")

	status, body := env.do(http.MethodGet, "/api/wells/"+w.ID.String(), uTok, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.WellResponse](t, body)
	require.Len(t, got.Layers, 3)
	assert.Equal(t, []float64{0, 2, 5}, []float64{got.Layers[0].DepthFrom, got.Layers[1].DepthFrom, got.Layers[2].DepthFrom})

	status, _ = env.do(http.MethodDelete, "/api/wells/"+w.ID.String(), uTok, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(http.MethodGet, "/api/layers/"+deep.ID.String(), uTok, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = env.do(http.MethodGet, "/api/layers/", uTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]dto.LayerResponse](t, body))
}

func TestDrillingLog_UpdateLayer(t *testing.T) {
	env := newTestEnv(t)
	uTok := token(t, uuid.New(), "u@example.com", false)
	vTok := token(t, uuid.New(), "v@example.com", false)

	w := env.createWell(uTok, "W")
	l := env.createLayer(uTok, w.ID, 1, 2, "loam")

	status, body := env.do(http.MethodPatch, "/api/layers/"+l.ID.String(), uTok, map[string]interface{}{
		"depth_to": 3.456, "thickness": 100,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 2.46, decode[dto.LayerResponse](t, body).Thickness)

	status, body = env.do(http.MethodPut, "/api/layers/"+l.ID.String(), uTok, map[string]interface{}{
		"depth_to": 4,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Contains(t, errResp.Fields, "lithology")

	status, _ = env.do(http.MethodPatch, "/api/layers/"+l.ID.String(), vTok, map[string]interface{}{
		"depth_to": 9,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(http.MethodDelete, "/api/layers/"+l.ID.String(), vTok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.do(http.MethodDelete, "/api/layers/"+l.ID.String(), uTok, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestDrillingLog_Validation(t *testing.T) {
	env := newTestEnv(t)
	uTok := token(t, uuid.New(), "u@example.com", false)
	w := env.createWell(uTok, "W")

	tests := []struct {
		name  string
		path  string
		body  interface{}
		field string
	}{
		{"missing well fields", "/api/wells/", map[string]interface{}{"name": "W"}, "design_depth"},
		{"wrong type", "/api/wells/", `{"name":"W","area":"A","structure":"S","design_depth":"deep"}`, "design_depth"},
		{"invalid lithology", "/api/layers/", map[string]interface{}{
			"well": w.ID.String(), "depth_from": 0, "depth_to": 1, "lithology": "granite",
		}, "lithology"},
		{"malformed well ref", "/api/layers/", map[string]interface{}{
			"well": "not-a-uuid", "depth_from": 0, "depth_to": 1, "lithology": "sand",
		}, "well"},
		{"unknown well", "/api/layers/", map[string]interface{}{
			"well": uuid.New().String(), "depth_from": 0, "depth_to": 1, "lithology": "sand",
		}, "well"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(http.MethodPost, tt.path, uTok, tt.body)
			assert.Equal(t, http.StatusBadRequest, status, string(body))
			assert.Contains(t, decode[dto.ErrorResponse](t, body).Fields, tt.field)
		})
	}

	status, _ := env.do(http.MethodPost, "/api/wells/", uTok, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDrillingLog_Superuser(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.AdminEmails = "chief@example.com" })
	uTok := token(t, uuid.New(), "u@example.com", false)
	vTok := token(t, uuid.New(), "v@example.com", false)
	rootTok := token(t, uuid.New(), "root@example.com", true)
	chiefTok := token(t, uuid.New(), "chief@example.com", false)

	env.createWell(uTok, "U")
	vw := env.createWell(vTok, "V")

	for _, tok := range []string{rootTok, chiefTok} {
		status, body := env.do(http.MethodGet, "/api/wells/my_wells/", tok, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]dto.WellResponse](t, body), 2)
	}

	status, body := env.do(http.MethodGet, "/api/wells/", uTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.WellResponse](t, body), 1)

	status, _ = env.do(http.MethodPost, "/api/layers/", rootTok, map[string]interface{}{
		"well": vw.ID.String(), "depth_from": 0, "depth_to": 1, "lithology": "sand",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDrillingLog_Filters(t *testing.T) {
	env := newTestEnv(t)
	uTok := token(t, uuid.New(), "u@example.com", false)

	env.createWell(uTok, "North-1")
	status, body := env.do(http.MethodPost, "/api/wells/", uTok, map[string]interface{}{
		"name": "South-1", "area": "Delta", "structure": "S", "design_depth": 10,
	})
	require.Equal(t, http.StatusCreated, status)
	south := decode[dto.WellResponse](t, body)
	env.createLayer(uTok, south.ID, 0, 1, "peat")
	env.createLayer(uTok, south.ID, 1, 2, "sand")

	status, body = env.do(http.MethodGet, "/api/wells/?area=Delta", uTok, nil)
	require.Equal(t, http.StatusOK, status)
	wells := decode[[]dto.WellResponse](t, body)
	require.Len(t, wells, 1)
	assert.Equal(t, "South-1", wells[0].Name)

	status, body = env.do(http.MethodGet, "/api/wells/?search=north", uTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.WellResponse](t, body), 1)

	status, body = env.do(http.MethodGet, "/api/layers/?lithology=peat", uTok, nil)
	require.Equal(t, http.StatusOK, status)
	layers := decode[[]dto.LayerResponse](t, body)
	require.Len(t, layers, 1)
	assert.Equal(t, "Торф", layers[0].LithologyDisplay)
}

func TestDrillingLog_Auth(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(http.MethodGet, "/api/wells/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(http.MethodGet, "/api/layers/", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(http.MethodGet, "/api/wells/not-a-uuid", token(t, uuid.New(), "u@example.com", false), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDrillingLog_IndexPage(t *testing.T) {
	env := newTestEnv(t)
	uTok := token(t, uuid.New(), "u@example.com", false)
	env.createWell(uTok, "W")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/accounts/login/?next=/", resp.Header.Get("Location"))

	status, body := env.do(http.MethodGet, "/", uTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Скважин: 1")
}

func TestDrillingLog_HealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, body).DB)

	status, body = env.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "drilling_log_http_requests_total")
}
