package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps low-level database errors onto the API taxonomy.
// 23505 (unique violation) becomes a 409 so duplicate email / student_id /
// employee_id writes surface as conflicts instead of 500s.
func MapDBError(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fiber.NewError(fiber.StatusConflict, conflictMsg)
		case "23503":
			return fiber.NewError(fiber.StatusBadRequest, "Referenced record does not exist")
		}
	}
	if IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict, conflictMsg)
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// IsUniqueViolation also catches drivers that only expose the message
// (sqlite in tests, libpq plain errors).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
