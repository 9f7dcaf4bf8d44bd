package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pollboard/internal/config"
	"pollboard/internal/db"
	"pollboard/internal/testdb"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	conn := testdb.Open(t)
	cfg := config.Default()
	cfg.BcryptCost = bcrypt.MinCost
	cfg.TokenSecret = "test-secret"
	return New(conn, cfg).Router(), conn
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope %q: %v", rec.Body.String(), err)
	}
	return envelope
}

func registration(username string) map[string]any {
	return map[string]any{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "Str0ng@Pass",
		"firstName": "Test",
		"lastName":  "Person",
	}
}

// registerAccount creates an account over HTTP and returns its id.
func registerAccount(t *testing.T, router *gin.Engine, kind, username string) uint {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/"+kind+"/register", registration(username))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", kind, rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	id, ok := payload["id"].(float64)
	if !ok {
		t.Fatalf("register response missing id: %v", payload)
	}
	return uint(id)
}

func createPollHTTP(t *testing.T, router *gin.Engine, adminID uint, options ...string) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/admin/%d/polls", adminID), map[string]any{
		"title":   "Favorite color",
		"options": options,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create poll: status %d, body %s", rec.Code, rec.Body.String())
	}
	return decodeBody(t, rec)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	userID := registerAccount(t, router, "user", "alice")
	if userID == 0 {
		t.Fatal("user id not assigned")
	}

	rec := doJSON(t, router, http.MethodPost, "/api/user/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Str0ng@Pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if token, _ := payload["token"].(string); token == "" {
		t.Fatal("login response carries no token")
	}
	user, _ := payload["user"].(map[string]any)
	if user == nil {
		t.Fatal("login response carries no user")
	}
	if _, exposed := user["password"]; exposed {
		t.Fatal("password digest leaked in login response")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/user/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Wr0ng@Pass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.ErrorCode != "INVALID_CREDENTIALS" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
	if envelope.Message != "invalid email or password" {
		t.Fatalf("credential failure message must stay opaque, got %q", envelope.Message)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAccount(t, router, "user", "alice")

	body := registration("alice2")
	body["email"] = "alice@example.com"
	rec := doJSON(t, router, http.MethodPost, "/api/user/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: status %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope.ErrorCode != "DUPLICATE_RESOURCE" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
}

func TestMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope.ErrorCode != "MALFORMED_REQUEST" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
}

func TestPollCreateCollectsEveryViolation(t *testing.T) {
	router, conn := newTestRouter(t)
	adminID := registerAccount(t, router, "admin", "owner")

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/admin/%d/polls", adminID), map[string]any{
		"title":       "Bad",
		"description": strings.Repeat("x", 1001),
		"options":     []string{"Same", "Same"},
		"endsAt":      "2020-01-01T00:00:00Z",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
	if len(envelope.ValidationErrors) != 4 {
		t.Fatalf("validationErrors = %d, want 4: %+v", len(envelope.ValidationErrors), envelope.ValidationErrors)
	}
	byField := make(map[string]string, len(envelope.ValidationErrors))
	for _, detail := range envelope.ValidationErrors {
		byField[detail.Field] = detail.Message
	}
	for field, message := range map[string]string{
		"title":       "Poll title must be between 5 and 200 characters",
		"description": "Poll description cannot exceed 1000 characters",
		"options":     "Poll options must be unique",
		"endsAt":      "Poll end date must be in the future",
	} {
		if byField[field] != message {
			t.Fatalf("field %s message = %q, want %q", field, byField[field], message)
		}
	}

	var polls int64
	conn.Model(&db.Poll{}).Count(&polls)
	if polls != 0 {
		t.Fatalf("rejected request persisted %d polls", polls)
	}
}

func TestVoteFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	adminID := registerAccount(t, router, "admin", "owner")
	userID := registerAccount(t, router, "user", "voter")
	created := createPollHTTP(t, router, adminID, "Red", "Blue")
	pollID := int(created["id"].(float64))
	options := created["options"].([]any)
	optionID := int(options[0].(map[string]any)["id"].(float64))

	votePath := fmt.Sprintf("/api/user/%d/polls/%d/vote", userID, pollID)
	rec := doJSON(t, router, http.MethodPost, votePath, map[string]any{"optionId": optionID})
	if rec.Code != http.StatusOK {
		t.Fatalf("vote: status %d, body %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["message"] != "Vote submitted successfully" {
		t.Fatalf("message = %v", payload["message"])
	}

	rec = doJSON(t, router, http.MethodPost, votePath, map[string]any{"optionId": optionID})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second vote: status %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.ErrorCode != "INVALID_OPERATION" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
	if envelope.Message != "user has already voted on this poll" {
		t.Fatalf("message = %q", envelope.Message)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/user/polls/%d/results", pollID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results: status %d", rec.Code)
	}
	results := decodeBody(t, rec)
	if total := results["totalVotes"].(float64); total != 1 {
		t.Fatalf("totalVotes = %v, want 1", total)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/user/%d/polls/%d/voted", userID, pollID), nil)
	if voted := decodeBody(t, rec)["hasVoted"].(bool); !voted {
		t.Fatal("hasVoted = false after voting")
	}
}

func TestVoteRejectsNonPositiveOption(t *testing.T) {
	router, _ := newTestRouter(t)
	adminID := registerAccount(t, router, "admin", "owner")
	userID := registerAccount(t, router, "user", "voter")
	created := createPollHTTP(t, router, adminID, "Red", "Blue")
	pollID := int(created["id"].(float64))

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/user/%d/polls/%d/vote", userID, pollID),
		map[string]any{"optionId": -5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
	if len(envelope.ValidationErrors) != 1 || envelope.ValidationErrors[0].Field != "optionId" {
		t.Fatalf("details = %+v", envelope.ValidationErrors)
	}
}

func TestOwnershipOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	ownerID := registerAccount(t, router, "admin", "owner")
	otherID := registerAccount(t, router, "admin", "other")
	created := createPollHTTP(t, router, ownerID, "Red", "Blue")
	pollID := int(created["id"].(float64))

	rec := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/admin/%d/polls/%d", otherID, pollID),
		map[string]any{"title": "Hijacked title"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if envelope := decodeEnvelope(t, rec); envelope.ErrorCode != "UNAUTHORIZED_OPERATION" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}

	rec = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/admin/%d/polls/%d", otherID, pollID), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestPollLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	adminID := registerAccount(t, router, "admin", "owner")
	created := createPollHTTP(t, router, adminID, "Red", "Blue")
	pollID := int(created["id"].(float64))
	base := fmt.Sprintf("/api/admin/%d/polls/%d", adminID, pollID)

	rec := doJSON(t, router, http.MethodPatch, base+"/deactivate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate: status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/user/polls/active", nil)
	var active []any
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode active polls: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated poll still listed active: %v", active)
	}

	rec = doJSON(t, router, http.MethodPatch, base+"/activate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, base, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["message"] != "Poll deleted successfully" {
		t.Fatalf("message = %v", payload["message"])
	}
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/user/polls/%d", pollID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted poll fetch: status %d", rec.Code)
	}
}

func TestPathIDRejectsNonNumeric(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/user/abc", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope.ErrorCode != "RESOURCE_NOT_FOUND" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
}

func TestMissingPollReturnsEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/user/polls/404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.ErrorCode != "RESOURCE_NOT_FOUND" {
		t.Fatalf("errorCode = %s", envelope.ErrorCode)
	}
	if envelope.Path != "/api/user/polls/404" {
		t.Fatalf("path = %s", envelope.Path)
	}
	if envelope.Status != http.StatusNotFound {
		t.Fatalf("status field = %d", envelope.Status)
	}
	if envelope.Timestamp == "" {
		t.Fatal("timestamp missing")
	}
}
