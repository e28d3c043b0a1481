package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector-api/internal/application"
	"github.com/devconnector/devconnector-api/internal/infrastructure/memory"
	handlers "github.com/devconnector/devconnector-api/internal/interface/http"
	"github.com/devconnector/devconnector-api/internal/interface/middleware"
	"github.com/devconnector/devconnector-api/internal/router"
	"github.com/devconnector/devconnector-api/internal/router/modules"
	"github.com/devconnector/devconnector-api/pkg/helpers"
	"github.com/devconnector/devconnector-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

type testAPI struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	profiles := memory.NewProfileRepository(users)
	posts := memory.NewPostRepository()

	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	authSvc := application.NewAuthService(users, jwt, logger)
	profileSvc := application.NewProfileService(profiles, users, nil, 0, logger)
	postSvc := application.NewPostService(posts, users, nil, 0, logger)

	reg := router.NewRegistry(gin.New())
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, logger)))
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt, logger))
	reg.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), jwt, logger))
	reg.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt, logger))
	reg.RegisterAll()

	return &testAPI{engine: reg.Engine, jwt: jwt}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(t *testing.T, name, email, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testAPI) userID(t *testing.T, token string) string {
	t.Helper()
	claims, err := a.jwt.Parse(token)
	require.NoError(t, err)
	return claims.User.ID
}

func TestRegister_Validation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": "", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
			Msg   string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	fields := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		fields = append(fields, e.Field)
		assert.NotEmpty(t, e.Msg)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t)

	api.register(t, "Alice", "alice@x.com", "secret1")

	w := api.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": "Mallory", "email": "ALICE@x.com", "password": "other66",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"User already exists"}]}`, w.Body.String())
}

func TestLogin_UniformFailureShape(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Alice", "alice@x.com", "secret1")

	wrongPass := api.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email": "alice@x.com", "password": "wrongpass",
	})
	unknownEmail := api.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email": "nobody@x.com", "password": "secret1",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Invalid Credentials"}]}`, wrongPass.Body.String())
	// Identical bodies: nothing reveals whether the email exists.
	assert.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
}

func TestLogin_ThenCurrentUser(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Alice", "Alice@X.com", "secret1")

	w := api.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	me := api.do(t, http.MethodGet, "/api/auth", resp.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &user))
	assert.Equal(t, "alice@x.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	assert.Contains(t, user["avatar"], "gravatar.com")
	// The hash must never appear in a response.
	assert.NotContains(t, user, "password")
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	api := newTestAPI(t)

	missing := api.do(t, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.JSONEq(t, `{"msg":"No token, authorization denied"}`, missing.Body.String())

	expired, _, err := helpers.NewJWTManager("test-secret", -time.Minute).Generate("u1")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"tampered": "eyJ.eyJ.invalid",
		"expired":  expired,
	} {
		w := api.do(t, http.MethodGet, "/api/posts", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.JSONEq(t, `{"msg":"Token is not valid"}`, w.Body.String(), name)
	}
}

func TestPosts_OwnershipLifecycle(t *testing.T) {
	api := newTestAPI(t)

	aliceToken := api.register(t, "Alice", "alice@x.com", "secret1")
	bobToken := api.register(t, "Bob", "bob@x.com", "secret2")
	aliceID := api.userID(t, aliceToken)

	// Alice creates a post; it records her as owner.
	created := api.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())

	var post struct {
		ID     string `json:"id"`
		UserID string `json:"user"`
		Name   string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &post))
	assert.Equal(t, aliceID, post.UserID)
	assert.Equal(t, "Alice", post.Name)

	// Bob cannot delete it; it is still retrievable afterwards.
	denied := api.do(t, http.MethodDelete, "/api/posts/"+post.ID, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, denied.Code)
	assert.JSONEq(t, `{"msg":"User not authorized"}`, denied.Body.String())

	still := api.do(t, http.MethodGet, "/api/posts/"+post.ID, bobToken, nil)
	assert.Equal(t, http.StatusOK, still.Code)

	// Alice can.
	removed := api.do(t, http.MethodDelete, "/api/posts/"+post.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, removed.Code)
	assert.JSONEq(t, `{"msg":"Post Removed"}`, removed.Body.String())

	gone := api.do(t, http.MethodGet, "/api/posts/"+post.ID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
	assert.JSONEq(t, `{"msg":"Post Not Found"}`, gone.Body.String())
}

func TestPosts_MalformedIDIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Alice", "alice@x.com", "secret1")

	w := api.do(t, http.MethodGet, "/api/posts/definitely-not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"Post Not Found"}`, w.Body.String())
}

func TestProfile_Lifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Alice", "alice@x.com", "secret1")

	// No profile yet.
	missing := api.do(t, http.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.JSONEq(t, `{"msg":"No Profile Exists for this user"}`, missing.Body.String())

	// Status and skills are required.
	invalid := api.do(t, http.MethodPost, "/api/profile", token, gin.H{"bio": "hi"})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	created := api.do(t, http.MethodPost, "/api/profile", token, gin.H{
		"status": "Developer",
		"skills": "Go, Redis,PostgreSQL",
		"bio":    "hello",
	})
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())

	var profile struct {
		Skills []string `json:"skills"`
		User   struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &profile))
	assert.Equal(t, []string{"Go", "Redis", "PostgreSQL"}, profile.Skills)
	assert.Equal(t, "Alice", profile.User.Name)

	// Public listing needs no token.
	list := api.do(t, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var profiles []json.RawMessage
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 1)
}

func TestDeleteAccount_KeepsPosts(t *testing.T) {
	api := newTestAPI(t)

	aliceToken := api.register(t, "Alice", "alice@x.com", "secret1")
	bobToken := api.register(t, "Bob", "bob@x.com", "secret2")

	_ = api.do(t, http.MethodPost, "/api/profile", aliceToken, gin.H{
		"status": "Developer", "skills": "Go",
	})
	created := api.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{"text": "orphan me"})
	require.Equal(t, http.StatusOK, created.Code)

	deleted := api.do(t, http.MethodDelete, "/api/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.JSONEq(t, `{"msg":"User Deleted"}`, deleted.Body.String())

	// Identity is gone: credentials no longer work and the profile list is
	// empty again.
	login := api.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email": "alice@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, login.Code)

	list := api.do(t, http.MethodGet, "/api/profile", "", nil)
	var profiles []json.RawMessage
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &profiles))
	assert.Empty(t, profiles)

	// The post survives the account (known cascade gap, preserved).
	posts := api.do(t, http.MethodGet, "/api/posts", bobToken, nil)
	require.Equal(t, http.StatusOK, posts.Code)
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(posts.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}
