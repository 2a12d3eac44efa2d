package contest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nairobininja/fina/internal/models"
)

func TestEffectiveBanPhase(t *testing.T) {
	tests := []struct {
		name       string
		requested  models.BanPhase
		poolSize   int
		rounds     int
		teams      int
		want       models.BanPhase
		downgraded bool
	}{
		{
			name:      "classic sustained",
			requested: models.BanPhaseClassic,
			poolSize:  9, rounds: 3, teams: 2,
			want: models.BanPhaseClassic,
		},
		{
			name:      "classic downgrades to normal",
			requested: models.BanPhaseClassic,
			poolSize:  8, rounds: 3, teams: 2,
			want: models.BanPhaseNormal, downgraded: true,
		},
		{
			name:      "classic cascades to first phase",
			requested: models.BanPhaseClassic,
			poolSize:  5, rounds: 3, teams: 2,
			want: models.BanPhaseFirstOnly, downgraded: true,
		},
		{
			name:      "classic cascades to none",
			requested: models.BanPhaseClassic,
			poolSize:  4, rounds: 3, teams: 2,
			want: models.BanPhaseNone, downgraded: true,
		},
		{
			name:      "normal sustained",
			requested: models.BanPhaseNormal,
			poolSize:  6, rounds: 3, teams: 2,
			want: models.BanPhaseNormal,
		},
		{
			name:      "none never downgrades",
			requested: models.BanPhaseNone,
			poolSize:  1, rounds: 1, teams: 2,
			want: models.BanPhaseNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, downgraded := effectiveBanPhase(tt.requested, tt.poolSize, tt.rounds, tt.teams)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.downgraded, downgraded)
		})
	}
}

func TestSortCharts(t *testing.T) {
	charts := []*models.Chart{
		{Name: "Beta", SongKey: "beta", Tier: 2, Color: models.ChartColorDark},
		{Name: "Alpha", SongKey: "alpha", Tier: 3, Color: models.ChartColorLight},
		{Name: "Alpha", SongKey: "alpha", Tier: 2, Color: models.ChartColorLight},
		{Name: "Gamma", SongKey: "gamma", Tier: 2, Color: models.ChartColorDark},
	}

	sortCharts(charts, models.ColorBoth)
	assert.Equal(t, "Alpha", charts[0].Name)
	assert.Equal(t, 2, charts[0].Tier)
	assert.Equal(t, "Alpha", charts[1].Name)
	assert.Equal(t, 3, charts[1].Tier)
	assert.Equal(t, "Beta", charts[2].Name)

	// Dual side pools group light charts before dark ones.
	sortCharts(charts, models.ColorLightVsDark)
	assert.Equal(t, models.AllegianceLight, charts[0].Side())
	assert.Equal(t, models.AllegianceLight, charts[1].Side())
	assert.Equal(t, "Beta", charts[2].Name)
	assert.Equal(t, "Gamma", charts[3].Name)
}

func TestRotatedLeavesInputIntact(t *testing.T) {
	a := models.NewTeam([]*models.Contestant{{UserID: "a"}})
	b := models.NewTeam([]*models.Contestant{{UserID: "b"}})
	c := models.NewTeam([]*models.Contestant{{UserID: "c"}})

	teams := []*models.Team{a, b, c}
	next := rotated(teams)

	assert.Equal(t, []*models.Team{b, c, a}, next)
	assert.Equal(t, []*models.Team{a, b, c}, teams)
}
