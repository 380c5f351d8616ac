package apimodel

import (
	"errors"
	"strings"
)

var (
	ErrMissingField     = errors.New("missing required field")
	ErrEmptyField       = errors.New("empty field")
	ErrInvalidId        = errors.New("invalid identifier")
	ErrConflictingField = errors.New("conflicting field values")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidAddress   = errors.New("invalid ip address")
	ErrEmptyEntry       = errors.New("empty queue entry")
	ErrUnknownSong      = errors.New("unknown song")
	ErrUnknownPlaylist  = errors.New("unknown playlist")
	ErrUnknownServer    = errors.New("unknown server")
	ErrDuplicate        = errors.New("duplicate")
)

// FieldError ties a sentinel error to the record and field it was raised for.
type FieldError struct {
	Entity string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(e.Entity)
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(entity, field string, err error) error {
	return &FieldError{Entity: entity, Field: field, Err: err}
}
