package sheets

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCallbackHandler(t *testing.T) {
	codes := make(chan string, 1)
	errs := make(chan error, 1)
	handler := callbackHandler("state-1", codes, errs)

	t.Run("state mismatch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/callback?state=other&code=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, codes)
	})

	t.Run("missing code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-1", nil))
		assert.Contains(t, rec.Body.String(), "Authentication Failed")
		require.Len(t, errs, 1)
		<-errs
	})

	t.Run("code delivered", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-1&code=abc", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc", <-codes)
	})
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.Equal(t, "access", loaded.AccessToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRefreshTokenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, SaveToken(path, &oauth2.Token{RefreshToken: "saved"}))

	cfg := DefaultConfig()
	RefreshTokenFromFile(&cfg, path)
	assert.Equal(t, "saved", cfg.RefreshToken)

	cfg = DefaultConfig()
	cfg.RefreshToken = "explicit"
	RefreshTokenFromFile(&cfg, path)
	assert.Equal(t, "explicit", cfg.RefreshToken)

	cfg = DefaultConfig()
	cfg.ServiceAccountPath = "/keys/sa.json"
	RefreshTokenFromFile(&cfg, path)
	assert.Empty(t, cfg.RefreshToken)
}
