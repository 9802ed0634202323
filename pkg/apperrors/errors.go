package apperrors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNoFavoriteMovie = errors.New("set your favorite movie first")
	ErrInvalidMovie    = errors.New("invalid favorite movie")
)
