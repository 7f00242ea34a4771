package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corpsite/internal/auth"
	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/db/dbtest"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupTestAPI(t *testing.T) *API {
	t.Helper()
	return NewAPI(dbtest.Open(t), auth.NewManager("handler-test-secret", time.Hour), nil, Options{
		UploadDir:       t.TempDir(),
		UploadURL:       "/static/uploads",
		UploadMaxBytes:  1 << 20,
		ContactThrottle: time.Minute,
	})
}

func newJSONRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// callHandler runs a single handler against a test context.
func callHandler(t *testing.T, h gin.HandlerFunc, req *http.Request, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	h(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func createTestUser(t *testing.T, api *API, username, role string) *db.AdminUser {
	t.Helper()
	user, err := api.users.Create(service.AdminUserInput{
		Username: service.StringPtr(username),
		Password: service.StringPtr("password-123"),
		Role:     service.StringPtr(role),
	})
	require.NoError(t, err)
	return user
}

func issueTestToken(t *testing.T, api *API, user *db.AdminUser) string {
	t.Helper()
	token, _, err := api.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username, Role: user.Role})
	require.NoError(t, err)
	return token
}
