package router

import "errors"

var (
	// ErrBadPattern signals a Route's path failed to compile.
	ErrBadPattern = errors.New("bad pattern")

	// ErrDuplicateName signals two Routes were declared under the same name.
	ErrDuplicateName = errors.New("duplicate route name")

	// ErrMissingData signals a Route lacks a name or a handler.
	ErrMissingData = errors.New("missing data")

	// ErrMissingParam signals reverse lookup had no value for a capture.
	ErrMissingParam = errors.New("missing param")

	// ErrNotFound signals no Route matches a path.
	ErrNotFound = errors.New("no route matches")

	// ErrParamConstraint signals a value does not satisfy a capture's type.
	ErrParamConstraint = errors.New("param constraint violated")

	// ErrUnknownRoute signals reverse lookup of a name no Route was declared under.
	ErrUnknownRoute = errors.New("unknown route")
)
