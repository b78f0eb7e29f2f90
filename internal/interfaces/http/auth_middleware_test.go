package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockflow-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "stockflow-test"
	testExpMin    = 60
)

func newSigner(t *testing.T) *pkgjwt.Signer {
	t.Helper()
	s, err := pkgjwt.NewSigner(testJWTSecret, testIssuer, testExpMin)
	require.NoError(t, err)
	return s
}

func bearer(t *testing.T, s *pkgjwt.Signer, role string) string {
	t.Helper()
	tok, err := s.Generate(testUserID, testCompanyID, role)
	require.NoError(t, err)
	return "Bearer " + tok
}

// guardedApp GET /protected con AuthMiddleware + RequireRole(allowed...).
func guardedApp(t *testing.T, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(newSigner(t)),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireRole(t *testing.T) {
	signer := newSigner(t)
	other, err := pkgjwt.NewSigner(testJWTSecret, "otro-emisor", testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name     string
		allowed  []string
		header   string
		wantCode int
		wantBody string
	}{
		{"admin en ruta admin", []string{apphttp.RoleAdmin}, bearer(t, signer, "admin"), http.StatusOK, `"role":"admin"`},
		{"bodeguero en ruta de stock", []string{apphttp.RoleAdmin, apphttp.RoleBodeguero}, bearer(t, signer, "bodeguero"), http.StatusOK, `"role":"bodeguero"`},
		{"vendedor en ruta admin", []string{apphttp.RoleAdmin}, bearer(t, signer, "vendedor"), http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero en ruta de vendedor", []string{apphttp.RoleVendedor}, bearer(t, signer, "bodeguero"), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{apphttp.RoleAdmin}, bearer(t, signer, ""), http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{apphttp.RoleAdmin}, "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto de Bearer", []string{apphttp.RoleAdmin}, "Token abc", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", []string{apphttp.RoleAdmin}, "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"otro emisor", []string{apphttp.RoleAdmin}, bearer(t, other, "admin"), http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := get(t, guardedApp(t, tc.allowed...), "/protected", tc.header)
			assert.Equal(t, tc.wantCode, code)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestAuthMiddleware_LoadsClaimsIntoLocals(t *testing.T) {
	signer := newSigner(t)
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(signer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	code, body := get(t, app, "/me", bearer(t, signer, "vendedor"))
	require.Equal(t, http.StatusOK, code)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, testUserID, got["user_id"])
	assert.Equal(t, testCompanyID, got["company_id"])
	assert.Equal(t, "vendedor", got["role"])
}
