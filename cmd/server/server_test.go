package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/authn"
	"github.com/dmitrymomot/schoolkit/pkg/httpserver"
	"github.com/dmitrymomot/schoolkit/pkg/metrics"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

const (
	superAdmin  = "5d0d9a4e-9a0e-4f53-8f39-1f0f2a6c1c01"
	schoolAdmin = "5d0d9a4e-9a0e-4f53-8f39-1f0f2a6c1c02"
	teacherUser = "5d0d9a4e-9a0e-4f53-8f39-1f0f2a6c1c03"
	studentUser = "5d0d9a4e-9a0e-4f53-8f39-1f0f2a6c1c04"
)

type testServer struct {
	handler  http.Handler
	verifier *authn.Verifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)
	tenantCfg := tenant.Config{
		AdminHost:     "admin.example.com",
		MainDomain:    "example.com",
		LoopbackHosts: []string{"localhost", "127.0.0.1"},
		CacheTTL:      time.Minute,
		CacheSize:     16,
	}

	b, err := newBackend(ctx, appConfig{Store: storeMemory, Fixtures: "../../pkg/fixture/testdata/schools.yaml"}, log)
	require.NoError(t, err)
	require.NoError(t, b.withTenantCache(ctx, cacheMemory, tenantCfg, log))

	verifier, err := authn.NewVerifier(authn.Config{
		Secret:   "test-secret",
		Issuer:   "schoolkit",
		TokenTTL: time.Hour,
	}, b.principals)
	require.NoError(t, err)

	return &testServer{
		handler: newRouter(routerDeps{
			log:       log,
			backend:   b,
			tenantCfg: tenantCfg,
			verifier:  verifier,
			recorder:  metrics.New(prometheus.NewRegistry()),
			readiness: httpserver.Config{ReadinessTimeout: time.Second},
		}),
		verifier: verifier,
	}
}

func (s *testServer) do(t *testing.T, host, path, user string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	if user != "" {
		token, err := s.verifier.Issue(uuid.MustParse(user), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

type errorBody struct {
	Error struct {
		Code int    `json:"code"`
		Key  string `json:"key"`
	} `json:"error"`
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name       string
		host       string
		path       string
		user       string
		wantStatus int
		wantKey    string
		wantBody   string
	}{
		{"liveness", "localhost", "/healthz", "", http.StatusOK, "", `"alive"`},
		{"readiness without dependencies", "localhost", "/readyz", "", http.StatusOK, "", `"ready"`},
		{"anonymous", "sman1.example.com", "/api/me", "", http.StatusUnauthorized, "authentication_required", ""},
		{"school admin on own tenant", "sman1.example.com", "/api/me", schoolAdmin, http.StatusOK, "", `"slug":"sman1"`},
		{"custom domain", "sman1.sch.id", "/api/me", schoolAdmin, http.StatusOK, "", `"slug":"sman1"`},
		{"school admin on foreign tenant", "sman2.example.com", "/api/me", schoolAdmin, http.StatusForbidden, "not_your_tenant", ""},
		{"super admin with grant", "sman1.example.com", "/api/me", superAdmin, http.StatusOK, "", `"role":"super_admin"`},
		{"super admin with expired grant", "sman2.example.com", "/api/me", superAdmin, http.StatusForbidden, "access_not_granted", ""},
		{"inactive tenant", "sman3.example.com", "/api/me", schoolAdmin, http.StatusNotFound, "tenant_inactive", ""},
		{"unknown tenant", "nope.example.com", "/api/me", schoolAdmin, http.StatusNotFound, "tenant_not_found", ""},
		{"admin host has no tenant", "admin.example.com", "/api/me", superAdmin, http.StatusNotFound, "tenant_not_found", ""},
		{"path slug", "localhost", "/s/sman1/api/me", schoolAdmin, http.StatusOK, "", `"slug":"sman1"`},
		{"bind teacher", "sman1.example.com", "/api/teachers/T123", schoolAdmin, http.StatusOK, "", `"nik":"T123"`},
		{"unknown teacher", "sman1.example.com", "/api/teachers/T999", schoolAdmin, http.StatusNotFound, "entity_not_found", ""},
		{"teacher without module grant", "sman1.example.com", "/api/teachers/T123", teacherUser, http.StatusForbidden, "module_access_denied", ""},
		{"teacher reads grades", "sman1.example.com", "/api/grades/2024001", teacherUser, http.StatusOK, "", `"nis":"2024001"`},
		{"student reads own record", "sman1.example.com", "/api/students/2024001", studentUser, http.StatusOK, "", `"name":"Andi Wijaya"`},
		{"expired grant via path slug", "localhost", "/s/sman2/api/students/2024001", superAdmin, http.StatusForbidden, "access_not_granted", ""},
		{"ppdb enabled", "localhost", "/s/sman1/api/ppdb", schoolAdmin, http.StatusOK, "", `"open":true`},
		{"unknown route", "localhost", "/nope", "", http.StatusNotFound, "not_found", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := srv.do(t, tt.host, tt.path, tt.user)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			if tt.wantKey != "" {
				var body errorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantKey, body.Error.Key)
				assert.Equal(t, tt.wantStatus, body.Error.Code)
			}
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServer_InvalidToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Host = "sman1.example.com"
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	srv.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.do(t, "sman1.example.com", "/api/me", schoolAdmin)
	srv.do(t, "sman2.example.com", "/api/me", schoolAdmin)

	rr := srv.do(t, "localhost", "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `schoolkit_access_decisions_total{kind="membership",outcome="not_your_tenant",role="school_admin"} 1`), body)
	assert.Contains(t, body, `schoolkit_tenant_resolutions_total{outcome="ok"} 2`)
}

func TestNewBackend_UnknownStore(t *testing.T) {
	t.Parallel()

	_, err := newBackend(context.Background(), appConfig{Store: "sqlite"}, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, errUnknownBackend)
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	v, err := authn.NewVerifier(authn.Config{Secret: "s", Issuer: "schoolkit", TokenTTL: time.Hour}, authn.NewMemoryLoader())
	require.NoError(t, err)
	assert.Error(t, issueToken(v, "not-a-uuid", authn.Config{TokenTTL: time.Hour}))
}
