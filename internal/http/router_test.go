package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/safakhan413/user-data-api/internal/data/repos/directory"
	"github.com/safakhan413/user-data-api/internal/data/repos/testutil"
	httpH "github.com/safakhan413/user-data-api/internal/http/handlers"
	httpMW "github.com/safakhan413/user-data-api/internal/http/middleware"
	"github.com/safakhan413/user-data-api/internal/services"
)

type listedDevice struct {
	PhoneID    int    `json:"phoneId"`
	VmID       int    `json:"vmId"`
	Identifier string `json:"identifier"`
}

type listedUser struct {
	ID              int            `json:"id"`
	UserID          string         `json:"userId"`
	OriginationTime int64          `json:"originationTime"`
	ClusterID       *string        `json:"clusterId"`
	Phones          []listedDevice `json:"phones"`
	Voicemails      []listedDevice `json:"voicemails"`
}

func newTestRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}
	authService := services.NewAuthService(log, "admin", string(hash), "test-signing-key", time.Minute)

	userRepo := directory.NewUserRepo(db, log)
	directoryService := services.NewDirectoryService(db, log, userRepo)
	importService := services.NewImportService(
		db,
		log,
		userRepo,
		directory.NewClusterRepo(db, log),
		directory.NewPhoneRepo(db, log),
		directory.NewVoicemailRepo(db, log),
	)

	docA := services.Document{ID: 10001, UserID: "500000001", OriginationTime: 100, ClusterID: "domainserver2"}
	docA.Devices.Phone = []string{"b", "a"}
	docA.Devices.Voicemail = []string{"VM2", "VM1"}
	docB := services.Document{ID: 10002, UserID: "200000002", OriginationTime: 300, ClusterID: "domainserver1"}
	docB.Devices.Phone = []string{"c"}
	docC := services.Document{ID: 10003, UserID: "300000003", OriginationTime: 500}
	if _, err := importService.ImportDocuments(context.Background(), []services.Document{docA, docB, docC}); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	router := NewRouter(RouterConfig{
		Log:            log,
		HealthHandler:  httpH.NewHealthHandler(),
		AuthHandler:    httpH.NewAuthHandler(authService),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		UserHandler:    httpH.NewUserHandler(log, directoryService),
	})
	return router, authService
}

func issueToken(t *testing.T, as services.AuthService) string {
	t.Helper()
	token, err := as.IssueToken(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func getUsers(t *testing.T, router *gin.Engine, token, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTokenEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("POST /token: bad body: %v", err)
	}
	if body.AccessToken == "" || body.TokenType != "bearer" {
		t.Fatalf("POST /token: unexpected body: %+v", body)
	}

	// Wrong password is a 401.
	form = url.Values{"username": {"admin"}, "password": {"nope"}}
	req = httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("POST /token (bad password): expected 401, got %d", rec.Code)
	}
}

func TestUsersRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := getUsers(t, router, "", "/users/?start_time=0&end_time=1000")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}

	rec = getUsers(t, router, "garbage", "/users/?start_time=0&end_time=1000")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: expected 401, got %d", rec.Code)
	}
}

func TestUsersValidation(t *testing.T) {
	router, as := newTestRouter(t)
	token := issueToken(t, as)

	for name, path := range map[string]string{
		"inverted range":  "/users/?start_time=100&end_time=50",
		"equal range":     "/users/?start_time=100&end_time=100",
		"bogus parameter": "/users/?start_time=0&end_time=1000&parameter=bogus",
		"missing times":   "/users/",
		"non-integer":     "/users/?start_time=abc&end_time=10",
	} {
		rec := getUsers(t, router, token, path)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestUsersListing(t *testing.T) {
	router, as := newTestRouter(t)
	token := issueToken(t, as)

	rec := getUsers(t, router, token, "/users/?start_time=0&end_time=1000&parameter=phone")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /users/: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var users []listedUser
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("GET /users/: bad body: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("GET /users/: expected 3 users, got %d", len(users))
	}
	// min "a" < min "c"; the phoneless user comes last.
	if users[0].ID != 10001 || users[1].ID != 10002 || users[2].ID != 10003 {
		t.Fatalf("phone ordering: got %d %d %d", users[0].ID, users[1].ID, users[2].ID)
	}
	if users[0].Phones[0].Identifier != "a" || users[0].Phones[1].Identifier != "b" {
		t.Fatalf("phones not sorted in listing: %+v", users[0].Phones)
	}
	if users[2].ClusterID != nil {
		t.Fatalf("user without cluster should serialize clusterId as null")
	}

	// Time range filters.
	rec = getUsers(t, router, token, "/users/?start_time=0&end_time=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /users/ [0,50]: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("GET /users/ [0,50]: bad body: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("GET /users/ [0,50]: expected empty array, got %d users", len(users))
	}
}

func TestUsersDownloadMatchesListing(t *testing.T) {
	router, as := newTestRouter(t)
	token := issueToken(t, as)

	listRec := getUsers(t, router, token, "/users/?start_time=0&end_time=1000&parameter=user_id")
	if listRec.Code != http.StatusOK {
		t.Fatalf("GET /users/: expected 200, got %d", listRec.Code)
	}
	var users []listedUser
	if err := json.Unmarshal(listRec.Body.Bytes(), &users); err != nil {
		t.Fatalf("GET /users/: bad body: %v", err)
	}

	csvRec := getUsers(t, router, token, "/users/download?start_time=0&end_time=1000&parameter=user_id")
	if csvRec.Code != http.StatusOK {
		t.Fatalf("GET /users/download: expected 200, got %d", csvRec.Code)
	}
	if got := csvRec.Header().Get("Content-Disposition"); got != `attachment; filename=users.csv` {
		t.Fatalf("Content-Disposition: got %q", got)
	}

	rows, err := csv.NewReader(strings.NewReader(csvRec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	header := []string{"ID", "UserID", "OriginationTime", "ClusterID", "Phones", "Voicemails"}
	for i, col := range header {
		if rows[0][i] != col {
			t.Fatalf("CSV header mismatch: got %v", rows[0])
		}
	}
	if len(rows)-1 != len(users) {
		t.Fatalf("CSV row count %d != listing length %d", len(rows)-1, len(users))
	}

	for i, u := range users {
		row := rows[i+1]
		if row[0] != strconv.Itoa(u.ID) || row[1] != u.UserID {
			t.Fatalf("CSV row %d out of order: %v vs user %d", i, row, u.ID)
		}
		wantCluster := ""
		if u.ClusterID != nil {
			wantCluster = *u.ClusterID
		}
		if row[3] != wantCluster {
			t.Fatalf("CSV row %d cluster mismatch: %q vs %q", i, row[3], wantCluster)
		}
		var phones []string
		for _, p := range u.Phones {
			phones = append(phones, p.Identifier)
		}
		if row[4] != strings.Join(phones, ";") {
			t.Fatalf("CSV row %d phones mismatch: %q vs %q", i, row[4], strings.Join(phones, ";"))
		}
		var voicemails []string
		for _, vm := range u.Voicemails {
			voicemails = append(voicemails, vm.Identifier)
		}
		if row[5] != strings.Join(voicemails, ";") {
			t.Fatalf("CSV row %d voicemails mismatch: %q vs %q", i, row[5], strings.Join(voicemails, ";"))
		}
	}
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthcheck: expected 200, got %d", rec.Code)
	}
}
