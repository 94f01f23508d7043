package service

import "github.com/Nano867/prediction-crop/entities"

type RecommendService interface {
	// Recommend resolves region to its climate zone and evaluates the crops for
	// month. An unknown region is reported through RegionKnown, not an error.
	Recommend(region string, month int) (*entities.Recommendation, error)
	Regions() []entities.Region
	Crops() []entities.Crop
	Zones() []entities.ZoneTable
	Rules() string
}
