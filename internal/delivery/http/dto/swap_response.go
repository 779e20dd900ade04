package dto

import "skill-swap/internal/domain/swap"

type SwapListResponse struct {
	Swaps []swap.Swap `json:"swaps"`
	Total int         `json:"total"`
}
