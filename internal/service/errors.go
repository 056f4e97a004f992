package service

import (
	"context"
	"errors"

	"github.com/pageza/recipehub/internal/mealdb"
)

var (
	// ErrEmptyQuery is a validation error raised before any network call.
	ErrEmptyQuery = errors.New("please choose or type an ingredient")
	// ErrMissingID is returned when a detail lookup is requested without an id.
	ErrMissingID = errors.New("recipe id is required")
	// ErrNoResults marks a well-formed response with no matches.
	ErrNoResults = errors.New("no recipes found")
	// ErrRecipeNotFound is returned when a detail lookup finds nothing.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrPersist wraps a failure to write the favorites set.
	ErrPersist = errors.New("failed to save favorites")
)

// ErrorKind places an error in the user-facing taxonomy.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindNetwork
	KindEmpty
	KindStorage
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindEmpty:
		return "empty"
	case KindStorage:
		return "storage"
	case KindCanceled:
		return "canceled"
	}
	return "unknown"
}

// Kind classifies err. Anything unrecognised is treated as a network failure
// since every remote call funnels through the recipe API.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrEmptyQuery), errors.Is(err, ErrMissingID):
		return KindValidation
	case errors.Is(err, ErrNoResults), errors.Is(err, ErrRecipeNotFound), errors.Is(err, mealdb.ErrNotFound):
		return KindEmpty
	case errors.Is(err, ErrPersist):
		return KindStorage
	default:
		return KindNetwork
	}
}
