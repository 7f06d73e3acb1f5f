// Package apperr classifies errors raised by services and the store and
// translates them into HTTP status codes and client messages.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind 错误类别
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// Error 业务错误，Msg 原样返回给客户端
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

// IsKind 报告 err 链上是否存在指定类别的业务错误
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// postgres SQLSTATE
const (
	pgInvalidTextRepresentation = "22P02"
	pgUndefinedColumn           = "42703"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
)

// Translate 将错误映射为 HTTP 状态码与提示信息。
// 未识别的错误一律视为 500。
func Translate(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return http.StatusBadRequest, e.Msg
		case KindNotFound:
			return http.StatusNotFound, e.Msg
		case KindConflict:
			return http.StatusConflict, e.Msg
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "Resource not found"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return http.StatusBadRequest, "Bad Request"
		case pgUndefinedColumn:
			return http.StatusBadRequest, "Query Error"
		case pgForeignKeyViolation:
			if pgErr.TableName == "posts" || pgErr.TableName == "comments" {
				return http.StatusBadRequest, "Body Invalid"
			}
			return http.StatusNotFound, "ID Not Found"
		case pgUniqueViolation:
			return http.StatusBadRequest, "Invalid Key"
		}
	}

	return http.StatusInternalServerError, "Internal Server Error"
}
