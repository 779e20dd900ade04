package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/delivery/http/routes"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const testJWTSecret = "integration-secret"

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type idOnly struct {
	ID uuid.UUID `json:"id"`
}

type browseData struct {
	Users []struct {
		UserID           string `json:"user_id"`
		Name             string `json:"name"`
		TopOfferedSkills []struct {
			SkillName        string `json:"skill_name"`
			ProficiencyLevel string `json:"proficiency_level"`
		} `json:"top_offered_skills"`
	} `json:"users"`
	TotalCount int `json:"total_count"`
}

type swapDetails struct {
	ID               uuid.UUID       `json:"id"`
	Status           string          `json:"status"`
	RequesterProfile json.RawMessage `json:"requester_profile"`
	ProviderProfile  json.RawMessage `json:"provider_profile"`
	OfferedSkill     json.RawMessage `json:"offered_skill"`
	WantedSkill      json.RawMessage `json:"wanted_skill"`
}

func TestIntegration_ProfileSkillsBrowse(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()
	runMigrations(t, ctx, db)

	alice := "it-alice-" + uuid.NewString()
	defer cleanupProfiles(t, db, alice)

	app := newTestFiberApp(t, db)
	tok := tokenFor(t, alice)

	mustCall(t, app, "POST", "/api/v1/profile", tok, `{"name":"Alice","is_public":true}`, fiber.StatusCreated)
	mustCall(t, app, "POST", "/api/v1/profile/skills/offered", tok, `{"skill_name":"Python","proficiency_level":"expert"}`, fiber.StatusOK)
	mustCall(t, app, "POST", "/api/v1/profile/skills/wanted", tok, `{"skill_name":"Design","urgency_level":"high"}`, fiber.StatusOK)

	res := mustCall(t, app, "GET", "/api/v1/users/browse?skill_filter=Python&page_size=50", "", "", fiber.StatusOK)
	var data browseData
	if err := json.Unmarshal(res.Data, &data); err != nil {
		t.Fatalf("decode browse: %v", err)
	}

	for _, u := range data.Users {
		if u.UserID != alice {
			continue
		}
		if u.Name != "Alice" {
			t.Fatalf("browse: expected name Alice, got %q", u.Name)
		}
		for _, s := range u.TopOfferedSkills {
			if s.SkillName == "Python" && s.ProficiencyLevel == "expert" {
				return
			}
		}
		t.Fatalf("browse: Python/expert missing from top_offered_skills: %+v", u.TopOfferedSkills)
	}
	t.Fatalf("browse: %s not in results (total_count=%d)", alice, data.TotalCount)
}

func TestIntegration_SwapLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()
	runMigrations(t, ctx, db)

	requester := "it-requester-" + uuid.NewString()
	provider := "it-provider-" + uuid.NewString()
	defer cleanupProfiles(t, db, requester, provider)

	app := newTestFiberApp(t, db)
	reqTok, provTok := tokenFor(t, requester), tokenFor(t, provider)

	mustCall(t, app, "POST", "/api/v1/profile", reqTok, `{"name":"Requester"}`, fiber.StatusCreated)
	mustCall(t, app, "POST", "/api/v1/profile", provTok, `{"name":"Provider"}`, fiber.StatusCreated)

	offered := decodeID(t, mustCall(t, app, "POST", "/api/v1/profile/skills/offered", provTok,
		`{"skill_name":"Guitar","proficiency_level":"advanced"}`, fiber.StatusOK))
	wanted := decodeID(t, mustCall(t, app, "POST", "/api/v1/profile/skills/wanted", reqTok,
		`{"skill_name":"Guitar","urgency_level":"medium"}`, fiber.StatusOK))

	body, _ := json.Marshal(map[string]any{
		"provider_id":      provider,
		"offered_skill_id": offered,
		"wanted_skill_id":  wanted,
		"message":          "Would love to learn",
	})
	created := mustCall(t, app, "POST", "/api/v1/swaps", reqTok, string(body), fiber.StatusCreated)
	var s swapDetails
	if err := json.Unmarshal(created.Data, &s); err != nil {
		t.Fatalf("decode swap: %v", err)
	}
	if s.Status != "pending" {
		t.Fatalf("create swap: expected pending, got %q", s.Status)
	}

	path := "/api/v1/swaps/" + s.ID.String()
	mustCall(t, app, "PUT", path+"/status", provTok, `{"status":"accepted","response_message":"Sure"}`, fiber.StatusOK)

	got := mustCall(t, app, "GET", path, reqTok, "", fiber.StatusOK)
	var d swapDetails
	if err := json.Unmarshal(got.Data, &d); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if d.Status != "accepted" {
		t.Fatalf("get swap: expected accepted, got %q", d.Status)
	}
	for name, raw := range map[string]json.RawMessage{
		"requester_profile": d.RequesterProfile,
		"provider_profile":  d.ProviderProfile,
		"offered_skill":     d.OfferedSkill,
		"wanted_skill":      d.WantedSkill,
	} {
		if len(raw) == 0 || string(raw) == "null" {
			t.Fatalf("get swap: expected %s populated", name)
		}
	}

	outsider := tokenFor(t, "it-outsider-"+uuid.NewString())
	mustCall(t, app, "GET", path, outsider, "", fiber.StatusNotFound)
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := orDefault(os.Getenv("SKILLSWAP_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := orDefault(os.Getenv("SKILLSWAP_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := orDefault(os.Getenv("SKILLSWAP_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := orDefault(os.Getenv("SKILLSWAP_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := orDefault(os.Getenv("SKILLSWAP_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := orDefault(os.Getenv("SKILLSWAP_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLSWAP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  orDefault(ssl, "disable"),
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}
	// internal/integration -> repo root
	dir := filepath.Join(filepath.Dir(file), "..", "..", "migrations")

	r := migration.Runner{Dir: dir, Logger: quietLogger()}
	if err := r.Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func cleanupProfiles(t *testing.T, db database.DB, userIDs ...string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = ANY($1)`, userIDs); err != nil {
		t.Logf("cleanup: %v", err)
	}
}

func newTestFiberApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "skill-swap", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{Secret: testJWTSecret},
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(quietLogger()).Middleware())
	routes.NewRegistry(v1.Deps{Config: cfg, DB: db}).Register(app)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := jwt.NewHMACService(testJWTSecret, "").GenerateToken(userID, "", 10*time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}

func mustCall(t *testing.T, app *fiber.App, method, path, token, body string, want int) semanticResponse {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out semanticResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return out
}

func decodeID(t *testing.T, res semanticResponse) uuid.UUID {
	t.Helper()
	var v idOnly
	if err := json.Unmarshal(res.Data, &v); err != nil || v.ID == uuid.Nil {
		t.Fatalf("decode id: %v (%s)", err, string(res.Data))
	}
	return v.ID
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
