package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/pkg/errors"
)

var (
	ErrInvalidID    = errors.New("ID inválido")
	ErrInvalidLimit = errors.New("Límite inválido")
	ErrInvalidDate  = errors.New("Fecha inválida")
)

// ParseID parses a positive numeric identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// OptionalID parses key from v, returning 0 when absent.
func OptionalID(v url.Values, key string) (int64, error) {
	if v.Get(key) == "" {
		return 0, nil
	}
	return ParseID(v.Get(key))
}

// OptionalLimit parses a positive result cap, returning 0 when absent.
func OptionalLimit(v url.Values, key string) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidLimit
	}
	return n, nil
}

// OptionalDate parses a YYYY-MM-DD value, returning the zero Date when absent.
func OptionalDate(v url.Values, key string) (database.Date, error) {
	raw := v.Get(key)
	if raw == "" {
		return database.Date{}, nil
	}
	d, err := database.ParseDate(raw)
	if err != nil {
		return database.Date{}, ErrInvalidDate
	}
	return d, nil
}
