// file: internals/helpers/pg_errors.go
package helper

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLState extracts the Postgres error code from either driver.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// MapPGError turns storage failures into an HTTP status and message.
func MapPGError(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "record not found"
	}
	switch SQLState(err) {
	case "23P01": // exclusion_violation
		return http.StatusConflict, "booking overlaps an existing slot"
	case "23503": // foreign_key_violation
		return http.StatusBadRequest, "referenced record not found"
	case "23505": // unique_violation
		return http.StatusConflict, "slot already taken"
	case "57014": // query_canceled (statement_timeout)
		return http.StatusServiceUnavailable, "query timed out"
	}
	return http.StatusInternalServerError, err.Error()
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
