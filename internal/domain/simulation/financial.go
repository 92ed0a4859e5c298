package simulation

// FinancialBreakdown itemizes one week's settlement
type FinancialBreakdown struct {
	Revenue          float64
	ProcurementCost  float64
	HoldingCost      float64
	ShortagePenalty  float64
	OverflowPenalty  float64
	KpiFine          float64
	IntelligenceCost float64
	NetProfit        float64
	OverflowUnits    int
}

// TotalCosts sums every deduction from revenue
func (b FinancialBreakdown) TotalCosts() float64 {
	return b.ProcurementCost + b.HoldingCost + b.ShortagePenalty + b.OverflowPenalty + b.KpiFine + b.IntelligenceCost
}

// SettlementInput carries the quantities a turn settles on
type SettlementInput struct {
	Sales               int
	MissedSales         int
	EndingInventory     int
	OrderQuantity       int
	MarketPrice         float64
	ShippingCostPerUnit float64
	KpiScore            int
	IntelligenceCost    float64
}

// FinancialModel holds the per-unit constants fixed at session start
type FinancialModel struct {
	SellingPrice           float64
	HoldingCostPerUnit     float64
	ShortagePenaltyPerUnit float64
	WarehouseCapacity      int
	OverflowPenaltyPerUnit float64
	KpiEnabled             bool
	Thresholds             KpiThresholds
	Fines                  KpiFines
}

// NewFinancialModel derives the model from a game config. Capabilities that are
// off zero out their cost lines.
func NewFinancialModel(cfg Config) FinancialModel {
	m := FinancialModel{
		SellingPrice:           cfg.SellingPrice,
		HoldingCostPerUnit:     cfg.HoldingCostPerUnit,
		ShortagePenaltyPerUnit: cfg.ShortagePenaltyPerUnit,
		KpiEnabled:             cfg.Capabilities.HasKpi,
		Thresholds:             cfg.Kpi.Thresholds,
		Fines:                  cfg.Kpi.Fines,
	}
	if cfg.Capabilities.HasWarehouse {
		m.WarehouseCapacity = cfg.Warehouse.Capacity
		m.OverflowPenaltyPerUnit = cfg.Warehouse.OverflowPenaltyPerUnit
	}
	return m
}

// Settle computes the breakdown. Procurement is charged at order time.
func (m FinancialModel) Settle(in SettlementInput) FinancialBreakdown {
	b := FinancialBreakdown{
		Revenue:          float64(in.Sales) * m.SellingPrice,
		ProcurementCost:  float64(in.OrderQuantity) * (in.MarketPrice + in.ShippingCostPerUnit),
		HoldingCost:      float64(in.EndingInventory) * m.HoldingCostPerUnit,
		ShortagePenalty:  float64(in.MissedSales) * m.ShortagePenaltyPerUnit,
		KpiFine:          m.KpiFine(in.KpiScore),
		IntelligenceCost: in.IntelligenceCost,
	}
	if m.WarehouseCapacity > 0 && in.EndingInventory > m.WarehouseCapacity {
		b.OverflowUnits = in.EndingInventory - m.WarehouseCapacity
		b.OverflowPenalty = float64(b.OverflowUnits) * m.OverflowPenaltyPerUnit
	}
	b.NetProfit = b.Revenue - b.TotalCosts()
	return b
}

// KpiFine is the tiered fine for a post-update score
func (m FinancialModel) KpiFine(score int) float64 {
	if !m.KpiEnabled {
		return 0
	}
	switch {
	case score < m.Thresholds.Red:
		return m.Fines.Red
	case score < m.Thresholds.Yellow:
		return m.Fines.Yellow
	default:
		return 0
	}
}
