package usecase

import (
	"math"
	"math/rand/v2"

	"interview-prep-backend/internal/domain"
)

// maxSafeInteger bounds the range so every value is exactly representable as a float64.
const maxSafeInteger = 1<<53 - 1

type randomUsecase struct {
	int64n func(n int64) int64
}

func NewRandomUsecase() domain.RandomUsecase {
	return &randomUsecase{int64n: rand.Int64N}
}

// NewRandomUsecaseWithSource is NewRandomUsecase with an injectable generator.
func NewRandomUsecaseWithSource(int64n func(n int64) int64) domain.RandomUsecase {
	return &randomUsecase{int64n: int64n}
}

// IntInclusive draws uniformly from [ceil(min), floor(max)].
func (u *randomUsecase) IntInclusive(min, max float64) (int64, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min > max {
		return 0, domain.ErrInvalidRange
	}
	lo, hi := math.Ceil(min), math.Floor(max)
	if lo > hi || lo < -maxSafeInteger || hi > maxSafeInteger {
		return 0, domain.ErrInvalidRange
	}
	span := int64(hi) - int64(lo) + 1
	return int64(lo) + u.int64n(span), nil
}
