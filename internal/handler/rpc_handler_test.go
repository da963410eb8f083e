package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/amigos-chat/internal/repository"
	"github.com/weiawesome/amigos-chat/internal/service"
	"github.com/weiawesome/amigos-chat/internal/testutil"
	"github.com/weiawesome/amigos-chat/pkg/database"
)

const (
	alice = "0xA11CE00000000000000000000000000000000001"
	bob   = "0xB0B0000000000000000000000000000000000002"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	userRepo := repository.NewGormUserRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	h := NewHandler(
		service.NewUserService(userRepo, nil, 0),
		service.NewGroupService(groupRepo, userRepo, nil, 0),
		service.NewMessageService(messageRepo, userRepo, groupRepo, nil, 0),
		func(ctx context.Context) error { return database.Ping(ctx, db) },
	)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func call(t *testing.T, r http.Handler, method, procedure string, input any) (int, envelope) {
	t.Helper()

	target := "/trpc/" + procedure
	var body *bytes.Reader
	raw, err := json.Marshal(input)
	require.NoError(t, err)

	if method == http.MethodGet {
		if input != nil {
			target += "?input=" + url.QueryEscape(string(raw))
		}
		body = bytes.NewReader(nil)
	} else {
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHandler_UserProcedures(t *testing.T) {
	r := newRouter(t)

	t.Run("register", func(t *testing.T) {
		req := require.New(t)
		code, env := call(t, r, http.MethodPost, "registerUser", map[string]any{
			"wallet_address": alice,
			"username":       "alice",
		})
		req.Equal(http.StatusOK, code)
		req.True(env.Success)

		var user map[string]any
		req.NoError(json.Unmarshal(env.Data, &user))
		req.Equal(alice, user["wallet_address"])
		req.Equal(true, user["is_registered"])
		req.Nil(user["ipfs_profile_pic_hash"])
	})

	t.Run("duplicate register conflicts", func(t *testing.T) {
		code, env := call(t, r, http.MethodPost, "registerUser", map[string]any{
			"wallet_address": alice,
			"username":       "again",
		})
		require.Equal(t, http.StatusConflict, code)
		require.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("invalid register input", func(t *testing.T) {
		code, env := call(t, r, http.MethodPost, "registerUser", map[string]any{
			"wallet_address": "0x123",
			"username":       "al",
		})
		require.Equal(t, http.StatusBadRequest, code)
		require.False(t, env.Success)
		require.Contains(t, env.Error.Message, "wallet_address must be exactly 42 characters")
		require.Contains(t, env.Error.Message, "username must be at least 3 characters")
	})

	t.Run("getUser via GET input", func(t *testing.T) {
		code, env := call(t, r, http.MethodGet, "getUser", map[string]any{"wallet_address": alice})
		require.Equal(t, http.StatusOK, code)
		require.Contains(t, string(env.Data), `"username":"alice"`)
	})

	t.Run("getUser absent is null", func(t *testing.T) {
		code, env := call(t, r, http.MethodGet, "getUser", map[string]any{"wallet_address": bob})
		require.Equal(t, http.StatusOK, code)
		require.True(t, env.Success)
		require.Equal(t, "null", string(env.Data))
	})

	t.Run("getAllUsers", func(t *testing.T) {
		code, env := call(t, r, http.MethodGet, "getAllUsers", nil)
		require.Equal(t, http.StatusOK, code)

		var users []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &users))
		require.Len(t, users, 1)
	})
}

func TestHandler_GroupAndMessageProcedures(t *testing.T) {
	r := newRouter(t)
	for _, u := range []map[string]any{
		{"wallet_address": alice, "username": "alice"},
		{"wallet_address": bob, "username": "bob"},
	} {
		code, _ := call(t, r, http.MethodPost, "registerUser", u)
		require.Equal(t, http.StatusOK, code)
	}

	code, _ := call(t, r, http.MethodPost, "createGroup", map[string]any{"group_id": 1, "name": "Amigos", "creator": alice})
	require.Equal(t, http.StatusOK, code)

	t.Run("createGroup requires group_id", func(t *testing.T) {
		code, env := call(t, r, http.MethodPost, "createGroup", map[string]any{"name": "x", "creator": alice})
		require.Equal(t, http.StatusBadRequest, code)
		require.Contains(t, env.Error.Message, "group_id is required")
	})

	t.Run("joinGroup", func(t *testing.T) {
		code, env := call(t, r, http.MethodPost, "joinGroup", map[string]any{"group_id": 1, "user_wallet_address": bob})
		require.Equal(t, http.StatusOK, code)
		require.Contains(t, string(env.Data), `"user_wallet_address":"`+bob+`"`)

		code, env = call(t, r, http.MethodPost, "joinGroup", map[string]any{"group_id": 1, "user_wallet_address": bob})
		require.Equal(t, http.StatusConflict, code)
		require.Contains(t, env.Error.Message, "already a member")

		code, env = call(t, r, http.MethodPost, "joinGroup", map[string]any{"group_id": 9, "user_wallet_address": bob})
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("getUserGroups", func(t *testing.T) {
		code, env := call(t, r, http.MethodGet, "getUserGroups", map[string]any{"user_wallet_address": bob})
		require.Equal(t, http.StatusOK, code)

		var groups []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &groups))
		require.Len(t, groups, 1)
		require.Equal(t, "Amigos", groups[0]["name"])
	})

	t.Run("getAllGroups via POST", func(t *testing.T) {
		code, env := call(t, r, http.MethodPost, "getAllGroups", map[string]any{})
		require.Equal(t, http.StatusOK, code)
		require.Contains(t, string(env.Data), `"group_id":1`)
	})

	t.Run("sendMessage and getMessages", func(t *testing.T) {
		req := require.New(t)

		code, env := call(t, r, http.MethodPost, "sendMessage", map[string]any{
			"from_address": alice,
			"group_id":     1,
			"content":      "hola",
			"message_type": "group",
		})
		req.Equal(http.StatusOK, code)

		var msg map[string]any
		req.NoError(json.Unmarshal(env.Data, &msg))
		req.Equal("group", msg["message_type"])
		req.Nil(msg["to_address"])
		_, err := time.Parse(time.RFC3339Nano, msg["timestamp"].(string))
		req.NoError(err)

		code, env = call(t, r, http.MethodGet, "getMessages", map[string]any{"user_address": bob, "group_id": 1})
		req.Equal(http.StatusOK, code)
		var msgs []map[string]any
		req.NoError(json.Unmarshal(env.Data, &msgs))
		req.Len(msgs, 1)
		req.Equal("hola", msgs[0]["content"])
	})

	t.Run("sendMessage error mapping", func(t *testing.T) {
		code, env := call(t, r, http.MethodPost, "sendMessage", map[string]any{
			"from_address": alice,
			"to_address":   "0xC0000000000000000000000000000000000000003",
			"content":      "anyone?",
			"message_type": "private",
		})
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, "recipient not found", env.Error.Message)

		code, env = call(t, r, http.MethodPost, "sendMessage", map[string]any{
			"from_address": alice,
			"content":      "to nobody",
			"message_type": "private",
		})
		require.Equal(t, http.StatusBadRequest, code)
		require.Contains(t, env.Error.Message, "to_address")

		code, _ = call(t, r, http.MethodPost, "sendMessage", map[string]any{
			"from_address": alice,
			"to_address":   bob,
			"content":      "",
			"message_type": "private",
		})
		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("getMessages rejects out of range limit", func(t *testing.T) {
		code, env := call(t, r, http.MethodGet, "getMessages", map[string]any{"user_address": bob, "group_id": 1, "limit": 101})
		require.Equal(t, http.StatusBadRequest, code)
		require.Contains(t, env.Error.Message, "limit must be at most 100")
	})

	t.Run("getMessages without target", func(t *testing.T) {
		code, env := call(t, r, http.MethodGet, "getMessages", map[string]any{"user_address": bob})
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "[]", string(env.Data))
	})
}

func TestHandler_Health(t *testing.T) {
	r := newRouter(t)

	code, env := call(t, r, http.MethodGet, "healthcheck", nil)
	require.Equal(t, http.StatusOK, code)
	var status map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.Equal(t, "ok", status["status"])
	_, err := time.Parse(time.RFC3339, status["timestamp"])
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_HealthUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, nil, func(context.Context) error { return errors.New("down") })
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
