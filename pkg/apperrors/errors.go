package apperrors

import "errors"

var (
	ErrUnknownTable          = errors.New("unknown table")
	ErrInvalidSchema         = errors.New("invalid schema")
	ErrInvalidRelationship   = errors.New("invalid relationship")
	ErrAmbiguousRelationship = errors.New("ambiguous relationship")
	ErrInvalidJoinType       = errors.New("invalid join type")
	ErrUnsafeIdentifier      = errors.New("unsafe identifier")
	ErrEmptyRequest          = errors.New("no tables requested")
)
