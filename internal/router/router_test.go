package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"home-budget/internal/config"
	"home-budget/internal/database"
	"home-budget/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type APISuite struct {
	suite.Suite
	engine *gin.Engine
}

func (s *APISuite) SetupTest() {
	db, err := database.InitMemory()
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.AutoMigrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			Issuer:        "home-budget",
			ExpireMinutes: 1440,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
	s.engine = router.SetupRouter(cfg, db)
}

func (s *APISuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// data unwraps the {code, data} envelope.
func (s *APISuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func (s *APISuite) register(username, email string) {
	w := s.do(http.MethodPost, "/api/users", "", fmt.Sprintf(
		`{"username":%q,"email":%q,"password":"secret123"}`, username, email))
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
}

func (s *APISuite) login(email string) string {
	w := s.do(http.MethodPost, "/api/auth/token", "", fmt.Sprintf(
		`{"username":%q,"password":"secret123"}`, email))
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	data := s.data(w)
	require.Equal(s.T(), "bearer", data["token_type"])
	return data["access_token"].(string)
}

func (s *APISuite) createCategory(token, name string) uint {
	w := s.do(http.MethodPost, "/api/categories", token, fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	cat := s.data(w)["category"].(map[string]interface{})
	return uint(cat["id"].(float64))
}

func (s *APISuite) createExpense(token string, categoryID uint, amount string) uint {
	w := s.do(http.MethodPost, "/api/expenses", token, fmt.Sprintf(
		`{"amount":%q,"category_id":%d,"description":"test"}`, amount, categoryID))
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	exp := s.data(w)["expense"].(map[string]interface{})
	return uint(exp["id"].(float64))
}

func (s *APISuite) TestRegisterAndConflict() {
	s.register("alice", "alice@example.com")

	// same email again: the storage constraint decides, reported as 409
	w := s.do(http.MethodPost, "/api/users", "", `{"username":"alice2","email":"alice@example.com","password":"secret123"}`)
	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *APISuite) TestLoginFailures() {
	s.register("alice", "alice@example.com")

	w := s.do(http.MethodPost, "/api/auth/token", "", `{"username":"alice@example.com","password":"wrong"}`)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(s.T(), w.Body.String(), "Incorrect email or password")

	// unknown account reads exactly the same
	w = s.do(http.MethodPost, "/api/auth/token", "", `{"username":"ghost@example.com","password":"wrong"}`)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Incorrect email or password")
}

// Registration lowercases the stored email; logging in with the casing used
// at registration must still work.
func (s *APISuite) TestLoginEmailCaseInsensitive() {
	s.register("alice", "Alice@Example.com")

	w := s.do(http.MethodPost, "/api/auth/token", "", `{"username":"Alice@Example.com","password":"secret123"}`)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(s.T(), s.data(w)["access_token"])

	// the lowercased form works too
	token := s.login("alice@example.com")
	w = s.do(http.MethodGet, "/api/users/me", token, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	user := s.data(w)["user"].(map[string]interface{})
	assert.Equal(s.T(), "alice@example.com", user["email"])
}

func (s *APISuite) TestProtectedRoutesChallenge() {
	for _, path := range []string{"/api/balance", "/api/users", "/api/categories", "/api/expenses"} {
		w := s.do(http.MethodGet, path, "", "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code, path)
		assert.Equal(s.T(), "Bearer", w.Header().Get("WWW-Authenticate"), path)
	}

	w := s.do(http.MethodGet, "/api/balance", "not-a-token", "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

// Full walk: register, login, category, 150.00 expense, balance 850.00.
func (s *APISuite) TestBalanceScenario() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")

	catID := s.createCategory(token, "groceries")
	s.createExpense(token, catID, "150.00")

	w := s.do(http.MethodGet, "/api/balance", token, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	data := s.data(w)
	assert.Equal(s.T(), "1000.00", data["starting_balance"])
	assert.Equal(s.T(), "150.00", data["total_spent"])
	assert.Equal(s.T(), "850.00", data["current_balance"])
}

func (s *APISuite) TestAggregateFilters() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")

	used := s.createCategory(token, "food")
	unused := s.createCategory(token, "travel")
	s.createExpense(token, used, "25.00")

	w := s.do(http.MethodGet, fmt.Sprintf("/api/aggregate?category_id=%d", used), token, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "25.00", s.data(w)["total_spending"])

	// a category with no expenses sums to zero
	w = s.do(http.MethodGet, fmt.Sprintf("/api/aggregate?category_id=%d", unused), token, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "0.00", s.data(w)["total_spending"])
}

// A row owned by someone else is indistinguishable from a missing row.
func (s *APISuite) TestOwnershipHidesRows() {
	s.register("alice", "alice@example.com")
	s.register("bob", "bob@example.com")
	aliceToken := s.login("alice@example.com")
	bobToken := s.login("bob@example.com")

	catID := s.createCategory(aliceToken, "groceries")
	expID := s.createExpense(aliceToken, catID, "10.00")

	w := s.do(http.MethodGet, fmt.Sprintf("/api/expenses/%d", expID), bobToken, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/expenses/%d", expID), bobToken, `{"amount":"1.00"}`)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/expenses/%d", expID), bobToken, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	// bob cannot hang his expense on alice's category either
	w = s.do(http.MethodPost, "/api/expenses", bobToken, fmt.Sprintf(
		`{"amount":"5.00","category_id":%d}`, catID))
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	// while user listing is deliberately unscoped
	w = s.do(http.MethodGet, "/api/users", bobToken, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	users := s.data(w)["users"].([]interface{})
	assert.Len(s.T(), users, 2)
}

func (s *APISuite) TestValidationErrors() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")
	catID := s.createCategory(token, "groceries")

	// non-positive and malformed amounts are rejected up front
	for _, amount := range []string{"0", "-5.00", "abc", "1.005"} {
		w := s.do(http.MethodPost, "/api/expenses", token, fmt.Sprintf(
			`{"amount":%q,"category_id":%d}`, amount, catID))
		assert.Equal(s.T(), http.StatusBadRequest, w.Code, amount)
	}
}

func (s *APISuite) TestDeleteLifecycle() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")

	catID := s.createCategory(token, "groceries")
	expID := s.createExpense(token, catID, "10.00")

	// deleting the category cascades to its expenses
	w := s.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), token, "")
	assert.Equal(s.T(), http.StatusNoContent, w.Code)
	assert.Empty(s.T(), w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/expenses/%d", expID), token, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), token, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestPartialExpenseUpdate() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")

	catID := s.createCategory(token, "groceries")
	expID := s.createExpense(token, catID, "10.00")

	// only the amount changes; description survives
	w := s.do(http.MethodPut, fmt.Sprintf("/api/expenses/%d", expID), token, `{"amount":"20.00"}`)
	require.Equal(s.T(), http.StatusOK, w.Code)
	exp := s.data(w)["expense"].(map[string]interface{})
	assert.Equal(s.T(), "20.00", exp["amount"])
	assert.Equal(s.T(), "test", exp["description"])
}

func (s *APISuite) TestCSVExport() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")

	catID := s.createCategory(token, "groceries")
	s.createExpense(token, catID, "10.00")

	w := s.do(http.MethodGet, "/api/expenses/export/csv", token, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(s.T(), w.Body.String(), "groceries")
	assert.Contains(s.T(), w.Body.String(), "10.00")
}

func (s *APISuite) TestXLSXExport() {
	s.register("alice", "alice@example.com")
	token := s.login("alice@example.com")

	catID := s.createCategory(token, "groceries")
	s.createExpense(token, catID, "10.00")

	w := s.do(http.MethodGet, "/api/expenses/export/xlsx", token, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(s.T(),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.NotEmpty(s.T(), w.Body.Bytes())
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
