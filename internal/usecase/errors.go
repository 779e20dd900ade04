package usecase

import (
	"errors"
	"fmt"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
)

var (
	ErrProfileNotFound         = errors.New("profile not found")
	ErrProfileExists           = errors.New("profile already exists")
	ErrSkillNotFound           = errors.New("skill not found")
	ErrSkillExists             = errors.New("skill already exists")
	ErrSwapNotFound            = errors.New("swap not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInternal                = errors.New("internal error")
)

// internal keeps the cause for logging while matching ErrInternal.
func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// translate maps domain and repository errors onto usecase errors. Anything unknown
// becomes internal.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrNotFound):
		return ErrProfileNotFound
	case errors.Is(err, user.ErrAlreadyExists):
		return ErrProfileExists
	case errors.Is(err, skill.ErrNotFound):
		return ErrSkillNotFound
	case errors.Is(err, skill.ErrAlreadyExists):
		return ErrSkillExists
	case errors.Is(err, swap.ErrNotFound):
		return ErrSwapNotFound
	case errors.Is(err, swap.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, swap.ErrInvalidTransition):
		return ErrInvalidStatusTransition
	default:
		return internal(err)
	}
}
