package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brgysanantonio/portal/internal/auth"
	"github.com/brgysanantonio/portal/internal/chat"
	"github.com/brgysanantonio/portal/internal/models"
	"github.com/brgysanantonio/portal/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminUser = "kap"
	testAdminPass = "testpass123"
)

func newTestAPI(t *testing.T) (http.Handler, *storage.DB, *chat.Bot) {
	t.Helper()

	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { db.Close() })

	hash, err := auth.HashPassword(testAdminPass)
	require.NoError(t, err)
	_, err = db.CreateAdmin(testAdminUser, hash)
	require.NoError(t, err)

	bot := chat.New(func() float64 {
		total, err := db.TotalAllocated()
		require.NoError(t, err)
		return total
	})

	return New(db, bot, false).Router(), db, bot
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func loginCookie(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPass,
	})
	require.Equal(t, http.StatusOK, w.Code, "login should succeed: %s", w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func TestListBudget(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodGet, "/budget", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.BudgetAllocation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 6)

	assert.Equal(t, models.SeedAllocations(), items, "fresh store serves the seed rows in id order")
}

func TestUpdateBudgetRequiresSession(t *testing.T) {
	handler, db, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 4, "allocated": 600000, "spent": 0, "status": "Ongoing",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	item, err := db.GetAllocation(4)
	require.NoError(t, err)
	assert.Equal(t, "Initial", item.Status, "row is unchanged")
}

func TestUpdateBudgetMissingFields(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 4, "allocated": 600000,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields.", body["message"])
}

func TestUpdateBudgetAllocatedBelowSpent(t *testing.T) {
	handler, db, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 1, "allocated": 100, "spent": 500, "status": "Ongoing",
	}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])

	// The row is left exactly as it was.
	item, err := db.GetAllocation(1)
	require.NoError(t, err)
	assert.Equal(t, 3200000.0, item.Allocated)
	assert.Equal(t, 2800000.0, item.Spent)
}

func TestUpdateBudgetNegativeAmounts(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 1, "allocated": 100, "spent": -40, "status": "Ongoing",
	}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateBudgetUnknownID(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 999, "allocated": 100, "spent": 0, "status": "Ongoing",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBudgetSuccess(t *testing.T) {
	handler, db, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 4, "allocated": 600000, "spent": 0, "status": "Ongoing",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success     bool                    `json:"success"`
		UpdatedItem models.BudgetAllocation `json:"updatedItem"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(4), resp.UpdatedItem.ID)
	assert.Equal(t, "Ongoing", resp.UpdatedItem.Status)
	assert.Equal(t, 600000.0, resp.UpdatedItem.Remaining())

	// Persisted, not just echoed.
	item, err := db.GetAllocation(4)
	require.NoError(t, err)
	assert.Equal(t, "Ongoing", item.Status)
}

func TestUpdateBudgetBlankStatus(t *testing.T) {
	handler, db, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 1, "allocated": 3200000, "spent": 2800000, "status": "   ",
	}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Status must not be empty.", body["message"])

	item, err := db.GetAllocation(1)
	require.NoError(t, err)
	assert.Equal(t, "Ongoing", item.Status, "row keeps its status")
}

func TestAdminFromContext(t *testing.T) {
	admin := &models.Admin{ID: 7, Username: "kap"}

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	assert.Nil(t, AdminFromContext(req), "no admin without the middleware")

	req = req.WithContext(context.WithValue(req.Context(), AdminContextKey, admin))
	assert.Equal(t, admin, AdminFromContext(req))
}

func TestUpdateBudgetTrimsStatus(t *testing.T) {
	handler, db, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 5, "allocated": 800000, "spent": 300000, "status": "  Completed  ",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	item, err := db.GetAllocation(5)
	require.NoError(t, err)
	assert.Equal(t, "Completed", item.Status)
}

func TestListPostsEmpty(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String(), "an empty feed is an empty array, not null")
}

func TestCreatePostRequiresSession(t *testing.T) {
	handler, db, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/posts", map[string]any{
		"title": "Water Interruption", "body": "Scheduled maintenance Friday 9am-3pm.", "imageUrl": nil,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Unauthorized. Please log in.", body["message"])

	count, err := db.PostCount()
	require.NoError(t, err)
	assert.Zero(t, count, "no row is written for unauthenticated callers")
}

func TestCreatePostMissingFields(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/posts", map[string]any{
		"title": "Only a title",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Title and body are required.", body["message"])
}

func TestCreatePostWhitespaceTitle(t *testing.T) {
	handler, db, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/posts", map[string]any{
		"title": "   ", "body": "A body",
	}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	count, err := db.PostCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreatePostSuccess(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/posts", map[string]any{
		"title": "  Water Interruption  ",
		"body":  "Scheduled maintenance Friday 9am-3pm.",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool        `json:"success"`
		Post    models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Post.ID, "response carries the store-assigned id")
	assert.Equal(t, "Water Interruption", resp.Post.Title, "title is stored trimmed")
	assert.Nil(t, resp.Post.ImageURL)
	assert.False(t, resp.Post.CreatedAt.IsZero())

	// The new post shows up in the listing.
	list := doJSON(t, handler, http.MethodGet, "/posts", nil)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, resp.Post.ID, posts[0].ID)
}

func TestCreatePostBlankImageURLStoredAsNull(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/posts", map[string]any{
		"title": "Notice", "body": "A body", "imageUrl": "   ",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Post models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Post.ImageURL)
}

func TestLoginWrongPassword(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/login", map[string]string{
		"username": testAdminUser, "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid username or password.", body["message"])
}

func TestLoginMissingCredentials(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/login", map[string]string{
		"username": testAdminUser,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	cookie := loginCookie(t, handler)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	w := doJSON(t, handler, http.MethodGet, "/session", nil, cookie)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["authenticated"])
}

func TestSessionCheckWithoutCookie(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["authenticated"])
}

func TestLogoutInvalidatesSession(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, handler, http.MethodGet, "/session", nil, cookie)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["authenticated"])

	w = doJSON(t, handler, http.MethodPost, "/posts", map[string]any{
		"title": "t", "body": "b",
	}, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatTotalBudget(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/chat", map[string]string{
		"message": "What is the total budget?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["reply"], "₱12,000,000.00", "reply carries the live sum of allocated amounts")
	assert.Equal(t, false, body["concernLogged"])
}

func TestChatTotalBudgetReflectsUpdates(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/budget/update", map[string]any{
		"id": 4, "allocated": 1600000, "spent": 0, "status": "Ongoing",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	reply := doJSON(t, handler, http.MethodPost, "/chat", map[string]string{
		"message": "total budget please",
	})
	body := decodeBody(t, reply)
	assert.Contains(t, body["reply"], "₱13,000,000.00")
}

func TestChatConcernIncrementsCount(t *testing.T) {
	handler, _, bot := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/chat", map[string]string{
		"message": "I have a concern about drainage",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["concernLogged"])
	assert.Equal(t, float64(1), body["concernCount"])
	assert.Equal(t, 1, bot.ConcernCount())
}

func TestChatEmptyMessage(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodPost, "/chat", map[string]string{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListConcernsRequiresSession(t *testing.T) {
	handler, _, _ := newTestAPI(t)

	w := doJSON(t, handler, http.MethodGet, "/concerns", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListConcerns(t *testing.T) {
	handler, _, _ := newTestAPI(t)
	cookie := loginCookie(t, handler)

	doJSON(t, handler, http.MethodPost, "/chat", map[string]string{
		"message": "I suggest more street lights",
	})

	w := doJSON(t, handler, http.MethodGet, "/concerns", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var concerns []models.Concern
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &concerns))
	require.Len(t, concerns, 1)
	assert.Equal(t, "I suggest more street lights", concerns[0].Message)
}
