package domain

type RandomRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type RandomUsecase interface {
	IntInclusive(min, max float64) (int64, error)
}
