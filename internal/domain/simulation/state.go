package simulation

// PlayerDecision is what the player commits each week
type PlayerDecision struct {
	OrderQuantity int
	ShippingMode  ShippingMode
}

// GameState is the full simulation state of one session
type GameState struct {
	Week             int
	Cash             float64
	Inventory        int
	MarketPrice      float64
	LeadTimeBase     int
	CongestionActive bool
	KpiScore         int
	PendingOrders    ShipmentLedger
	History          []TurnResult
	Terminal         bool

	MarketIntelActive  bool
	IntelChargePending float64

	// LastEventWeek guards EventSchedule.Apply against double application
	LastEventWeek int
	// OneShotDelay is the one-shot event surcharge for the current week's sea orders
	OneShotDelay int
}

// NewGameState returns week 1 of a game played under cfg
func NewGameState(cfg Config) GameState {
	return GameState{
		Week:         1,
		Cash:         cfg.StartingCash,
		Inventory:    cfg.StartingInventory,
		MarketPrice:  cfg.Price.Initial,
		LeadTimeBase: cfg.Shipping.BaseLeadTime,
		KpiScore:     cfg.Kpi.Initial,
	}
}

// Clone returns a deep copy; mutating it never affects s
func (s GameState) Clone() GameState {
	out := s
	out.PendingOrders = NewShipmentLedger(s.PendingOrders.Pending()...)
	if s.History != nil {
		out.History = make([]TurnResult, len(s.History))
		for i, r := range s.History {
			out.History[i] = r.clone()
		}
	}
	return out
}

// LastResult returns the most recent turn, if any
func (s GameState) LastResult() (TurnResult, bool) {
	if len(s.History) == 0 {
		return TurnResult{}, false
	}
	return s.History[len(s.History)-1], true
}

// PipelineInventory is the quantity ordered but not yet received
func (s GameState) PipelineInventory() int {
	return s.PendingOrders.TotalQuantity()
}
