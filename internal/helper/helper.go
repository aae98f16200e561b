package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// uniqueFields maps unique index names and columns to the field name reported to clients.
var uniqueFields = map[string]string{
	"uidx_employees_emp_email":   "Email",
	"uidx_employees_emp_aadhaar": "Aadhaar",
	"uidx_employees_emp_pan":     "PAN",
	"emp_email":                  "Email",
	"emp_aadhaar":                "Aadhaar",
	"emp_pan":                    "PAN",
}

// UniqueViolationField reports which employee field a unique-constraint error is about.
func UniqueViolationField(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		if f, ok := uniqueFields[pgErr.ConstraintName]; ok {
			return f, true
		}
		return lookupColumn(pgErr.Detail)
	}

	// sqlite: "UNIQUE constraint failed: employees.emp_email"
	msg := err.Error()
	if i := strings.Index(msg, "UNIQUE constraint failed:"); i >= 0 {
		return lookupColumn(msg[i:])
	}
	return "", false
}

func lookupColumn(text string) (string, bool) {
	for _, col := range []string{"emp_email", "emp_aadhaar", "emp_pan"} {
		if strings.Contains(text, col) {
			return uniqueFields[col], true
		}
	}
	return "", false
}
