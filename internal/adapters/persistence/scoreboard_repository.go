package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
)

// GormScoreboardRepository implements scoreboard.Repository using GORM
type GormScoreboardRepository struct {
	db *gorm.DB
}

// NewGormScoreboardRepository creates a new GORM scoreboard repository
func NewGormScoreboardRepository(db *gorm.DB) *GormScoreboardRepository {
	return &GormScoreboardRepository{db: db}
}

// Save stores a summary and its weeks in one transaction
func (r *GormScoreboardRepository) Save(ctx context.Context, summary *scoreboard.GameSummary, turns []scoreboard.TurnRecord) error {
	if summary == nil {
		return fmt.Errorf("summary cannot be nil")
	}

	model := summaryToModel(summary)
	turnModels := make([]TurnRecordModel, 0, len(turns))
	for _, turn := range turns {
		tm, err := turnToModel(summary, turn)
		if err != nil {
			return err
		}
		turnModels = append(turnModels, tm)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save game summary: %w", err)
		}
		if len(turnModels) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(turnModels, 100).Error; err != nil {
			return fmt.Errorf("failed to save turn records: %w", err)
		}
		return nil
	})
}

// FindBySessionID returns the latest summary archived for a session.
// A session that was reset and finished again has several; the newest wins.
func (r *GormScoreboardRepository) FindBySessionID(ctx context.Context, sessionID string) (*scoreboard.GameSummary, error) {
	var model GameSummaryModel
	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("completed_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &scoreboard.ErrSummaryNotFound{SessionID: sessionID}
		}
		return nil, fmt.Errorf("failed to find game summary: %w", result.Error)
	}

	return modelToSummary(&model)
}

// FindTop returns the best games by final cash, optionally for one variant
func (r *GormScoreboardRepository) FindTop(ctx context.Context, opts scoreboard.QueryOptions) ([]*scoreboard.GameSummary, error) {
	query := r.db.WithContext(ctx).Model(&GameSummaryModel{})
	if opts.Variant != "" {
		query = query.Where("variant = ?", strings.ToLower(opts.Variant))
	}
	query = query.Order("final_cash DESC").Order("completed_at ASC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var models []GameSummaryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list game summaries: %w", err)
	}

	summaries := make([]*scoreboard.GameSummary, 0, len(models))
	for i := range models {
		summary, err := modelToSummary(&models[i])
		if err != nil {
			continue // Skip rows with corrupt IDs
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// FindTurns returns the weeks of the latest archived game of a session
func (r *GormScoreboardRepository) FindTurns(ctx context.Context, sessionID string) ([]scoreboard.TurnRecord, error) {
	summary, err := r.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var models []TurnRecordModel
	result := r.db.WithContext(ctx).
		Where("summary_id = ?", summary.ID().String()).
		Order("week ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find turn records: %w", result.Error)
	}

	turns := make([]scoreboard.TurnRecord, 0, len(models))
	for i := range models {
		turn, err := modelToTurn(&models[i])
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func summaryToModel(summary *scoreboard.GameSummary) *GameSummaryModel {
	return &GameSummaryModel{
		ID:            summary.ID().String(),
		SessionID:     summary.SessionID(),
		Variant:       summary.Variant(),
		WeeksPlayed:   summary.WeeksPlayed(),
		FinalCash:     summary.FinalCash(),
		TotalProfit:   summary.TotalProfit(),
		FillRate:      summary.FillRate(),
		BullwhipRatio: summary.BullwhipRatio(),
		FinalKpi:      summary.FinalKpi(),
		CompletedAt:   summary.CompletedAt(),
	}
}

func modelToSummary(model *GameSummaryModel) (*scoreboard.GameSummary, error) {
	id, err := scoreboard.NewSummaryIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid summary ID in database: %w", err)
	}

	return scoreboard.ReconstructGameSummary(
		id,
		model.SessionID,
		model.Variant,
		model.WeeksPlayed,
		model.FinalCash,
		model.TotalProfit,
		model.FillRate,
		model.BullwhipRatio,
		model.FinalKpi,
		model.CompletedAt,
	), nil
}

func turnToModel(summary *scoreboard.GameSummary, turn scoreboard.TurnRecord) (TurnRecordModel, error) {
	var eventsJSON string
	if len(turn.Events) > 0 {
		bytes, err := json.Marshal(turn.Events)
		if err != nil {
			return TurnRecordModel{}, fmt.Errorf("failed to marshal events: %w", err)
		}
		eventsJSON = string(bytes)
	}

	return TurnRecordModel{
		SummaryID:       summary.ID().String(),
		SessionID:       summary.SessionID(),
		Week:            turn.Week,
		Demand:          turn.Demand,
		OrderQuantity:   turn.OrderQuantity,
		ShippingMode:    turn.ShippingMode,
		LeadTime:        turn.LeadTime,
		Arrivals:        turn.Arrivals,
		Sales:           turn.Sales,
		MissedSales:     turn.MissedSales,
		EndingInventory: turn.EndingInventory,
		KpiScore:        turn.KpiScore,
		MarketPrice:     turn.MarketPrice,
		NetProfit:       turn.NetProfit,
		CashAfter:       turn.CashAfter,
		Events:          eventsJSON,
	}, nil
}

func modelToTurn(model *TurnRecordModel) (scoreboard.TurnRecord, error) {
	var events []string
	if model.Events != "" {
		if err := json.Unmarshal([]byte(model.Events), &events); err != nil {
			return scoreboard.TurnRecord{}, fmt.Errorf("failed to unmarshal events for week %d: %w", model.Week, err)
		}
	}

	return scoreboard.TurnRecord{
		Week:            model.Week,
		Demand:          model.Demand,
		OrderQuantity:   model.OrderQuantity,
		ShippingMode:    model.ShippingMode,
		LeadTime:        model.LeadTime,
		Arrivals:        model.Arrivals,
		Sales:           model.Sales,
		MissedSales:     model.MissedSales,
		EndingInventory: model.EndingInventory,
		KpiScore:        model.KpiScore,
		MarketPrice:     model.MarketPrice,
		NetProfit:       model.NetProfit,
		CashAfter:       model.CashAfter,
		Events:          events,
	}, nil
}
