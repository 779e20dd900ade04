package skill

import "errors"

var (
	ErrNotFound      = errors.New("skill not found")
	ErrAlreadyExists = errors.New("skill already exists")
)
