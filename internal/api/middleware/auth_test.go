package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signhey/signhey-server/internal/pkg/jwt"
	"github.com/signhey/signhey-server/internal/pkg/response"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.ServerError(c, "user id missing")
			return
		}
		response.Success(c, gin.H{"user_id": userID})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	router := setupAuthRouter()

	token, err := jwt.GenerateToken(42, testSecret, 1)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["user_id"])
}

func TestAuth_MissingHeader(t *testing.T) {
	router := setupAuthRouter()

	w := doRequest(router, "")

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := setupAuthRouter()

	w := doRequest(router, "Token abcdef")

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	router := setupAuthRouter()

	w := doRequest(router, "Bearer not-a-real-token")

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	router := setupAuthRouter()

	token, err := jwt.GenerateToken(42, "other-secret", 1)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}
