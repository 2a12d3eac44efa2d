package chart

import "github.com/nairobininja/fina/internal/models"

type SaveChartInput struct {
	Chart *models.Chart
}

type GetChartInput struct {
	Ref models.ChartRef
}

type ListChartsOutput struct {
	Charts []*models.Chart
}

type SetOwnershipInput struct {
	UserID string
	Refs   []models.ChartRef
}

type QueryCommonChartsInput struct {
	// UserIDs lists the contestants whose owned charts are intersected
	UserIDs []string

	// MinConstant and MaxConstant bound the difficulty window (inclusive)
	MinConstant int
	MaxConstant int

	Difficulty models.DifficultyFilter
	Color      models.ColorFilter
}

type QueryCommonChartsOutput struct {
	Charts []*models.Chart
}
