//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Joan074/SellPoint/internal/config"
	"github.com/Joan074/SellPoint/internal/infra"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/router"
	"github.com/Joan074/SellPoint/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("sellpoint_test"),
		tcPostgres.WithUsername("sellpoint"),
		tcPostgres.WithPassword("sellpoint"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTIssuer:          "sellpoint",
		JWTAudience:        "sellpoint-clients",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		IVARate:            0.16,
		TicketPrefix:       "T",
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin empleado
	hash, err := bcrypt.GenerateFromPassword([]byte("sellpoint2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Empleado{
		Nombre:       "Admin E2E",
		Usuario:      "admin@e2e.test",
		PasswordHash: string(hash),
		Rol:          "administrador",
	}).Error)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"usuario": "admin@e2e.test", "contrasena": "sellpoint2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token}
}

// seedCatalogo creates a categoria, proveedor and one producto over the API.
func seedCatalogo(t *testing.T, env *testEnv, nombre, barcode string, precio float64, stock int) int {
	t.Helper()

	catResp := do(t, env.server, "POST", "/v1/categorias",
		jsonBody(t, map[string]any{"nombre": "Bebidas-" + nombre}), env.token)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID int `json:"id"`
	}
	decodeJSON(t, catResp, &cat)

	provResp := do(t, env.server, "POST", "/v1/proveedores",
		jsonBody(t, map[string]any{"nombre": "Distribuidora-" + nombre}), env.token)
	require.Equal(t, http.StatusCreated, provResp.StatusCode)
	var prov struct {
		ID int `json:"id"`
	}
	decodeJSON(t, provResp, &prov)

	prodResp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":        nombre,
			"precio":        precio,
			"stock":         stock,
			"categoria_id":  cat.ID,
			"proveedor_id":  prov.ID,
			"codigo_barras": barcode,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID int `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)
	return prod.ID
}

func getStock(t *testing.T, env *testEnv, productoID int) int {
	t.Helper()
	resp := do(t, env.server, "GET", fmt.Sprintf("/v1/productos/%d", productoID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, resp, &prod)
	return prod.Stock
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloDeVentaCompleto(t *testing.T) {
	env := setupTestEnv(t)
	prodID := seedCatalogo(t, env, "Gaseosa 500ml", "7890001000001", 10.00, 5)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"empleado_id": 1,
			"metodo_pago": "EFECTIVO",
			"items":       []map[string]any{{"producto_id": prodID, "cantidad": 2}},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID           int    `json:"id"`
		Subtotal     string `json:"subtotal"`
		IVA          string `json:"iva"`
		Total        string `json:"total"`
		Estado       string `json:"estado"`
		NumeroTicket string `json:"numero_ticket"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "COMPLETADA", venta.Estado)
	assert.Equal(t, "20", venta.Subtotal)
	assert.Equal(t, "3.2", venta.IVA)
	assert.Equal(t, "23.2", venta.Total)
	assert.Equal(t, fmt.Sprintf("T-%d-%d", venta.ID, time.Now().Year()), venta.NumeroTicket)

	assert.Equal(t, 3, getStock(t, env, prodID))

	listResp := do(t, env.server, "GET", "/v1/ventas", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var ventas []json.RawMessage
	decodeJSON(t, listResp, &ventas)
	assert.Len(t, ventas, 1)
}

func TestE2E_AnulacionIdempotente(t *testing.T) {
	env := setupTestEnv(t)
	prodID := seedCatalogo(t, env, "Vino 750ml", "7890001000002", 100.00, 10)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"empleado_id": 1,
			"metodo_pago": "TARJETA",
			"items":       []map[string]any{{"producto_id": prodID, "cantidad": 4}},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID int `json:"id"`
	}
	decodeJSON(t, ventaResp, &venta)
	require.Equal(t, 6, getStock(t, env, prodID))

	// First anulación restores stock
	anularResp := do(t, env.server, "DELETE", fmt.Sprintf("/v1/ventas/%d", venta.ID), nil, env.token)
	require.Equal(t, http.StatusOK, anularResp.StatusCode)
	var anulada struct {
		Estado string `json:"estado"`
	}
	decodeJSON(t, anularResp, &anulada)
	assert.Equal(t, "ANULADA", anulada.Estado)
	assert.Equal(t, 10, getStock(t, env, prodID))

	// Second anulación is a no-op
	anularResp2 := do(t, env.server, "DELETE", fmt.Sprintf("/v1/ventas/%d", venta.ID), nil, env.token)
	require.Equal(t, http.StatusOK, anularResp2.StatusCode)
	assert.Equal(t, 10, getStock(t, env, prodID))
}

func TestE2E_ConsultaPreciosSinToken(t *testing.T) {
	env := setupTestEnv(t)
	seedCatalogo(t, env, "Shampoo", "7890001000003", 42.90, 5)

	resp := do(t, env.server, "GET", "/v1/consulta-precios/7890001000003", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var precio struct {
		Nombre string `json:"nombre"`
		Precio string `json:"precio"`
	}
	decodeJSON(t, resp, &precio)
	assert.Equal(t, "Shampoo", precio.Nombre)
	assert.Equal(t, "42.9", precio.Precio)

	// Cached second read returns the same payload
	resp2 := do(t, env.server, "GET", "/v1/consulta-precios/7890001000003", nil, "")
	require.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestE2E_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/ventas", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
