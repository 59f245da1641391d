package types

import "errors"

var (
	ErrInvalidIdentifierKind = errors.New("invalid identifier kind, expected email or student_number")
	ErrInvalidSessionBackend = errors.New("invalid session backend, expected memory or postgres")
	ErrInvalidLogLevel       = errors.New("invalid log level, expected DEBUG, INFO, WARN or ERROR")

	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrExpiredToken    = errors.New("expired session token")
	ErrLapNotFound     = errors.New("lap not found")
)
