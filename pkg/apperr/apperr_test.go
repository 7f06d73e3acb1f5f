package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", Validation("Invalid limit"), http.StatusBadRequest, "Invalid limit"},
		{"wrapped not found", fmt.Errorf("get post: %w", NotFound("Resource not found")), http.StatusNotFound, "Resource not found"},
		{"conflict", Conflict("already following"), http.StatusConflict, "already following"},
		{"gorm not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), http.StatusNotFound, "Resource not found"},
		{"pg bad text", &pgconn.PgError{Code: "22P02"}, http.StatusBadRequest, "Bad Request"},
		{"pg undefined column", &pgconn.PgError{Code: "42703"}, http.StatusBadRequest, "Query Error"},
		{"pg fk on comments", &pgconn.PgError{Code: "23503", TableName: "comments"}, http.StatusBadRequest, "Body Invalid"},
		{"pg fk on ratings", &pgconn.PgError{Code: "23503", TableName: "ratings"}, http.StatusNotFound, "ID Not Found"},
		{"pg duplicate", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), http.StatusBadRequest, "Invalid Key"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := Translate(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Validation("Invalid genre"))
	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}
