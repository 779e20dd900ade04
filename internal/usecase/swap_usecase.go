package usecase

import (
	"context"
	"fmt"
	"strings"

	"skill-swap/internal/domain/swap"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

type CreateSwapInput struct {
	ProviderID     string
	OfferedSkillID uuid.UUID
	WantedSkillID  uuid.UUID
	Message        *string
}

type UpdateSwapStatusInput struct {
	Status          string
	ResponseMessage *string
}

// SwapRecorder observes swap lifecycle events.
type SwapRecorder interface {
	SwapCreated()
	SwapStatusChanged(from, to swap.Status)
}

type SwapOptions struct {
	// StrictTransitions rejects status changes outside the business transition table
	// and reserves accept and reject for the provider.
	StrictTransitions bool
	Recorder          SwapRecorder
}

type SwapUsecase interface {
	CreateSwap(ctx context.Context, requesterID string, in CreateSwapInput) (swap.Swap, error)
	GetSwap(ctx context.Context, userID string, id uuid.UUID) (swap.WithDetails, error)
	ListSwaps(ctx context.Context, userID, status, role string) ([]swap.Swap, error)
	ListPendingForProvider(ctx context.Context, userID string) ([]swap.Swap, error)
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, in UpdateSwapStatusInput) (swap.WithDetails, error)
	DeleteSwap(ctx context.Context, userID string, id uuid.UUID) error
	Statistics(ctx context.Context, userID string) (swap.Statistics, error)
}

type Swap struct {
	swaps    repository.SwapRepository
	profiles repository.ProfileRepository
	skills   repository.UserSkillRepository
	opts     SwapOptions
}

func NewSwapUsecase(swaps repository.SwapRepository, profiles repository.ProfileRepository, skills repository.UserSkillRepository, opts SwapOptions) *Swap {
	return &Swap{swaps: swaps, profiles: profiles, skills: skills, opts: opts}
}

// CreateSwap opens a pending request. The offered skill must be one the provider
// offers and the wanted skill one the requester wants.
func (u *Swap) CreateSwap(ctx context.Context, requesterID string, in CreateSwapInput) (swap.Swap, error) {
	requesterID = strings.TrimSpace(requesterID)
	providerID := strings.TrimSpace(in.ProviderID)
	if requesterID == "" || providerID == "" || requesterID == providerID {
		return swap.Swap{}, ErrInvalidInput
	}
	if in.OfferedSkillID == uuid.Nil || in.WantedSkillID == uuid.Nil {
		return swap.Swap{}, ErrInvalidInput
	}

	requester, err := u.profiles.GetByUserID(ctx, requesterID)
	if err != nil {
		return swap.Swap{}, translate(err)
	}
	provider, err := u.profiles.GetByUserID(ctx, providerID)
	if err != nil {
		return swap.Swap{}, translate(err)
	}

	offered, err := u.skills.GetOffered(ctx, in.OfferedSkillID)
	if err != nil {
		return swap.Swap{}, translate(err)
	}
	if offered.ProfileID != provider.ID {
		return swap.Swap{}, fmt.Errorf("%w: offered skill does not belong to provider", ErrInvalidInput)
	}
	wanted, err := u.skills.GetWanted(ctx, in.WantedSkillID)
	if err != nil {
		return swap.Swap{}, translate(err)
	}
	if wanted.ProfileID != requester.ID {
		return swap.Swap{}, fmt.Errorf("%w: wanted skill does not belong to requester", ErrInvalidInput)
	}

	created, err := u.swaps.Create(ctx, swap.NewSwap{
		RequesterID:    requesterID,
		ProviderID:     providerID,
		OfferedSkillID: offered.ID,
		WantedSkillID:  wanted.ID,
		Message:        trimPtr(in.Message),
	})
	if err != nil {
		return swap.Swap{}, translate(err)
	}
	if u.opts.Recorder != nil {
		u.opts.Recorder.SwapCreated()
	}
	return created, nil
}

// GetSwap returns the hydrated swap. Non-participants see ErrSwapNotFound.
func (u *Swap) GetSwap(ctx context.Context, userID string, id uuid.UUID) (swap.WithDetails, error) {
	d, err := u.swaps.GetWithDetails(ctx, id)
	if err != nil {
		return swap.WithDetails{}, translate(err)
	}
	if !d.HasParticipant(userID) {
		return swap.WithDetails{}, ErrSwapNotFound
	}
	return d, nil
}

func (u *Swap) ListSwaps(ctx context.Context, userID, status, role string) ([]swap.Swap, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	f := swap.ListFilter{UserID: userID}

	if strings.TrimSpace(status) != "" {
		st, ok := swap.ParseStatus(status)
		if !ok {
			return nil, ErrInvalidInput
		}
		f.Status = &st
	}
	r, ok := swap.ParseRole(strings.ToLower(strings.TrimSpace(role)))
	if !ok {
		return nil, ErrInvalidInput
	}
	f.Role = r

	items, err := u.swaps.List(ctx, f)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *Swap) ListPendingForProvider(ctx context.Context, userID string) ([]swap.Swap, error) {
	return u.ListSwaps(ctx, userID, string(swap.StatusPending), string(swap.RoleProvider))
}

func (u *Swap) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, in UpdateSwapStatusInput) (swap.WithDetails, error) {
	next, ok := swap.ParseStatus(in.Status)
	if !ok {
		return swap.WithDetails{}, ErrInvalidInput
	}

	current, err := u.swaps.GetByID(ctx, id)
	if err != nil {
		return swap.WithDetails{}, translate(err)
	}
	if !current.HasParticipant(userID) {
		return swap.WithDetails{}, ErrSwapNotFound
	}
	if u.opts.StrictTransitions {
		if err := checkTransition(current, userID, next); err != nil {
			return swap.WithDetails{}, err
		}
	}

	if _, err := u.swaps.UpdateStatus(ctx, id, next, trimPtr(in.ResponseMessage)); err != nil {
		return swap.WithDetails{}, translate(err)
	}
	if u.opts.Recorder != nil {
		u.opts.Recorder.SwapStatusChanged(current.Status, next)
	}

	d, err := u.swaps.GetWithDetails(ctx, id)
	if err != nil {
		return swap.WithDetails{}, translate(err)
	}
	return d, nil
}

func checkTransition(current swap.Swap, userID string, next swap.Status) error {
	if !current.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	if (next == swap.StatusAccepted || next == swap.StatusRejected) && userID != current.ProviderID {
		return ErrInvalidStatusTransition
	}
	return nil
}

func (u *Swap) DeleteSwap(ctx context.Context, userID string, id uuid.UUID) error {
	current, err := u.swaps.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if !current.HasParticipant(userID) {
		return ErrSwapNotFound
	}
	return translate(u.swaps.Delete(ctx, id))
}

func (u *Swap) Statistics(ctx context.Context, userID string) (swap.Statistics, error) {
	if strings.TrimSpace(userID) == "" {
		return swap.Statistics{}, ErrInvalidInput
	}
	st, err := u.swaps.Statistics(ctx, userID)
	if err != nil {
		return swap.Statistics{}, internal(err)
	}
	return st, nil
}
