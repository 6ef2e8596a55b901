package models

import "github.com/pkg/errors"

type Recommendation string

const (
	RecommendationStrongYes Recommendation = "Strong Yes"
	RecommendationYes       Recommendation = "Yes"
	RecommendationNeutral   Recommendation = "Neutral"
	RecommendationNo        Recommendation = "No"
	RecommendationStrongNo  Recommendation = "Strong No"
)

func (r Recommendation) IsValid() error {
	switch r {
	case RecommendationStrongYes, RecommendationYes, RecommendationNeutral, RecommendationNo, RecommendationStrongNo:
		return nil
	}
	return errors.Errorf("неизвестная рекомендация: %v", r)
}

const (
	MinRating = 1
	MaxRating = 5
)
