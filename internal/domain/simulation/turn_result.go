package simulation

// TurnResult records one settled week. Results are appended to history and never modified.
type TurnResult struct {
	Week               int
	Demand             int
	OrderQuantity      int
	ShippingMode       ShippingMode
	EffectiveLeadTime  int
	ArrivalWeek        int
	Arrivals           int
	AvailableInventory int
	Sales              int
	MissedSales        int
	EndingInventory    int
	KpiScore           int
	Breakdown          FinancialBreakdown
	NetProfit          float64
	CashBefore         float64
	CashAfter          float64
	CashDelta          float64
	MarketPrice        float64
	NextMarketPrice    float64
	Events             []Event

	CongestionNext bool
	BlackSwan      bool
	Overflow       bool
}

// EventIDs lists the IDs of the events fired this week
func (r TurnResult) EventIDs() []string {
	ids := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		ids = append(ids, ev.ID)
	}
	return ids
}

func (r TurnResult) clone() TurnResult {
	out := r
	if r.Events != nil {
		out.Events = append([]Event(nil), r.Events...)
	}
	return out
}
