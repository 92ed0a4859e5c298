package persistence

import (
	"time"
)

// GameSummaryModel represents the game_summaries table
type GameSummaryModel struct {
	ID            string    `gorm:"column:id;primaryKey;not null"`
	SessionID     string    `gorm:"column:session_id;not null;index"`
	Variant       string    `gorm:"column:variant;not null;index"`
	WeeksPlayed   int       `gorm:"column:weeks_played;not null"`
	FinalCash     float64   `gorm:"column:final_cash;not null;index"`
	TotalProfit   float64   `gorm:"column:total_profit;not null"`
	FillRate      float64   `gorm:"column:fill_rate;not null"`
	BullwhipRatio float64   `gorm:"column:bullwhip_ratio;not null"`
	FinalKpi      int       `gorm:"column:final_kpi;not null"`
	CompletedAt   time.Time `gorm:"column:completed_at;not null"`
}

func (GameSummaryModel) TableName() string {
	return "game_summaries"
}

// TurnRecordModel represents the turn_records table
type TurnRecordModel struct {
	ID              int               `gorm:"column:id;primaryKey;autoIncrement"`
	SummaryID       string            `gorm:"column:summary_id;not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Summary         *GameSummaryModel `gorm:"foreignKey:SummaryID;references:ID"`
	SessionID       string            `gorm:"column:session_id;not null;index"`
	Week            int               `gorm:"column:week;not null"`
	Demand          int               `gorm:"column:demand;not null"`
	OrderQuantity   int               `gorm:"column:order_quantity;not null"`
	ShippingMode    string            `gorm:"column:shipping_mode;not null"`
	LeadTime        int               `gorm:"column:lead_time;not null"`
	Arrivals        int               `gorm:"column:arrivals;not null;default:0"`
	Sales           int               `gorm:"column:sales;not null"`
	MissedSales     int               `gorm:"column:missed_sales;not null"`
	EndingInventory int               `gorm:"column:ending_inventory;not null"`
	KpiScore        int               `gorm:"column:kpi_score;not null"`
	MarketPrice     float64           `gorm:"column:market_price;not null"`
	NetProfit       float64           `gorm:"column:net_profit;not null"`
	CashAfter       float64           `gorm:"column:cash_after;not null"`
	Events          string            `gorm:"column:events;type:text"` // JSON array as text
}

func (TurnRecordModel) TableName() string {
	return "turn_records"
}
