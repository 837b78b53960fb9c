package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"zoomies/pkg/logger"
	"zoomies/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("debug")
	m.Run()
}

func TestIsSchemaMissing(t *testing.T) {
	t.Run("pg undefined table code", func(t *testing.T) {
		err := &pgconn.PgError{Code: "42P01", Message: `relation "community_posts" does not exist`}
		assert.True(t, IsSchemaMissing(err))
	})

	t.Run("wrapped pg error", func(t *testing.T) {
		err := fmt.Errorf("query failed: %w", &pgconn.PgError{Code: "42P01"})
		assert.True(t, IsSchemaMissing(err))
	})

	t.Run("other pg error code", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
		assert.False(t, IsSchemaMissing(err))
	})

	t.Run("message fallback", func(t *testing.T) {
		assert.True(t, IsSchemaMissing(errors.New(`relation "users" does not exist`)))
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.False(t, IsSchemaMissing(errors.New("connection refused")))
	})
}

func doHandleError(err error) (*httptest.ResponseRecorder, response.Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/posts", nil)

	HandleError(c, err, response.ErrPostNotFound, "Post not found")

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandleError(t *testing.T) {
	t.Run("record not found maps to 404", func(t *testing.T) {
		w, body := doHandleError(gorm.ErrRecordNotFound)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, response.ErrPostNotFound, body.Code)
		assert.Equal(t, "Post not found", body.Message)
	})

	t.Run("schema missing points at migrations", func(t *testing.T) {
		w, body := doHandleError(&pgconn.PgError{Code: "42P01"})
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, response.ErrSchemaMissing, body.Code)
		assert.Contains(t, body.Message, "cmd/migrate")
	})

	t.Run("other errors map to internal", func(t *testing.T) {
		w, body := doHandleError(errors.New("boom"))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, response.ErrServerInternal, body.Code)
	})
}
