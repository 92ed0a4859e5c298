package simulation

import "github.com/andrescamacho/sc-commander/pkg/utils"

const (
	MinKpiScore = 0
	MaxKpiScore = 100
)

// KpiBand classifies a reputation score against the fine thresholds
type KpiBand string

const (
	KpiBandGreen  KpiBand = "GREEN"
	KpiBandYellow KpiBand = "YELLOW"
	KpiBandRed    KpiBand = "RED"
)

// ReputationModel moves the KPI score by a fixed penalty or reward each week
type ReputationModel struct {
	Penalty    int
	Reward     int
	Thresholds KpiThresholds
}

func NewReputationModel(cfg KpiConfig) ReputationModel {
	return ReputationModel{
		Penalty:    cfg.Penalty,
		Reward:     cfg.Reward,
		Thresholds: cfg.Thresholds,
	}
}

// Update applies -Penalty when any sale was missed, +Reward otherwise
func (r ReputationModel) Update(score, missedSales int) int {
	if missedSales > 0 {
		score -= r.Penalty
	} else {
		score += r.Reward
	}
	return utils.ClampInt(score, MinKpiScore, MaxKpiScore)
}

func (r ReputationModel) Band(score int) KpiBand {
	switch {
	case score < r.Thresholds.Red:
		return KpiBandRed
	case score < r.Thresholds.Yellow:
		return KpiBandYellow
	default:
		return KpiBandGreen
	}
}
