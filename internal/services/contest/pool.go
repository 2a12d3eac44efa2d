package contest

import (
	"context"
	"fmt"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/repositories/chart"
)

// buildPool queries the charts every contestant owns and draws the session
// pool from them. The returned charts are fresh copies owned by the session.
func (s *service) buildPool(ctx context.Context, input *CreateSessionInput, userIDs []string) ([]*models.Chart, error) {
	out, err := s.chartRepo.QueryCommonCharts(ctx, &chart.QueryCommonChartsInput{
		UserIDs:     userIDs,
		MinConstant: input.MinConstant,
		MaxConstant: input.MaxConstant,
		Difficulty:  input.Difficulty,
		Color:       input.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query common charts: %w", err)
	}

	common := out.Charts
	for _, c := range common {
		c.Status = models.ChartStatusReady
	}

	switch input.Color {
	case models.ColorLightInvertible:
		// Dark charts only passed the filter because they can show a
		// light background, so they play as light here.
		for _, c := range common {
			if c.Color == models.ChartColorDark {
				c.Color = models.ChartColorLight
			}
		}
	case models.ColorDarkInvertible:
		for _, c := range common {
			if c.Color != models.ChartColorDark {
				c.Color = models.ChartColorDark
			}
		}
	}

	if input.Color.IsDualSide() {
		return s.drawDualSidePool(common, input)
	}
	return s.drawPool(common, input)
}

// drawPool shuffles the common charts and takes up to the requested pool
// size. The contest needs at least one chart per round.
func (s *service) drawPool(common []*models.Chart, input *CreateSessionInput) ([]*models.Chart, error) {
	size := input.PoolSize
	if len(common) < size {
		size = len(common)
	}
	if size < input.Rounds {
		return nil, fmt.Errorf("%w: %d available, %d rounds", ErrInsufficientCharts, size, input.Rounds)
	}

	s.shuffler.Shuffle(len(common), func(i, j int) {
		common[i], common[j] = common[j], common[i]
	})
	return common[:size], nil
}

// drawDualSidePool draws an equal number of light and dark charts. The
// inverted variant first swaps the color of every chart that has a
// background for the opposite side.
func (s *service) drawDualSidePool(common []*models.Chart, input *CreateSessionInput) ([]*models.Chart, error) {
	if input.Color == models.ColorLightVsDarkInverted {
		for _, c := range common {
			switch {
			case c.Color == models.ChartColorDark && c.LightBG != "":
				c.Color = models.ChartColorLight
			case c.Color != models.ChartColorDark && c.DarkBG != "":
				c.Color = models.ChartColorDark
			}
		}
	}

	var light, dark []*models.Chart
	for _, c := range common {
		if c.Side() == models.AllegianceDark {
			dark = append(dark, c)
		} else {
			light = append(light, c)
		}
	}

	// The requested size is rounded down to an even split.
	perSide := input.PoolSize / 2
	if len(light) < perSide {
		perSide = len(light)
	}
	if len(dark) < perSide {
		perSide = len(dark)
	}
	if perSide*2 < input.Rounds {
		return nil, fmt.Errorf("%w: %d per side, %d rounds", ErrInsufficientCharts, perSide, input.Rounds)
	}

	s.shuffler.Shuffle(len(light), func(i, j int) {
		light[i], light[j] = light[j], light[i]
	})
	s.shuffler.Shuffle(len(dark), func(i, j int) {
		dark[i], dark[j] = dark[j], dark[i]
	})

	pool := make([]*models.Chart, 0, perSide*2)
	pool = append(pool, light[:perSide]...)
	return append(pool, dark[:perSide]...), nil
}
