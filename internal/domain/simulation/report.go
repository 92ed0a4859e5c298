package simulation

// PerformanceReport summarizes a played history
type PerformanceReport struct {
	WeeksPlayed      int
	TotalDemand      int
	TotalSales       int
	TotalMissed      int
	TotalOrdered     int
	FillRate         float64
	TotalNetProfit   float64
	AverageNetProfit float64
	DemandVariance   float64
	OrderVariance    float64
	BullwhipRatio    float64
	PeakInventory    int
	OverflowWeeks    int
	FinalKpi         int
	FinalCash        float64
}

// BuildReport aggregates history. The bullwhip ratio is var(orders)/var(demand),
// or 0 when demand never varied.
func BuildReport(history []TurnResult) PerformanceReport {
	var r PerformanceReport
	if len(history) == 0 {
		return r
	}

	demands := make([]float64, 0, len(history))
	orders := make([]float64, 0, len(history))
	for _, t := range history {
		r.TotalDemand += t.Demand
		r.TotalSales += t.Sales
		r.TotalMissed += t.MissedSales
		r.TotalOrdered += t.OrderQuantity
		r.TotalNetProfit += t.NetProfit
		if t.EndingInventory > r.PeakInventory {
			r.PeakInventory = t.EndingInventory
		}
		if t.Overflow {
			r.OverflowWeeks++
		}
		demands = append(demands, float64(t.Demand))
		orders = append(orders, float64(t.OrderQuantity))
	}

	last := history[len(history)-1]
	r.WeeksPlayed = len(history)
	r.FinalKpi = last.KpiScore
	r.FinalCash = last.CashAfter
	r.AverageNetProfit = r.TotalNetProfit / float64(len(history))
	if r.TotalDemand > 0 {
		r.FillRate = float64(r.TotalSales) / float64(r.TotalDemand)
	} else {
		r.FillRate = 1
	}
	r.DemandVariance = variance(demands)
	r.OrderVariance = variance(orders)
	if r.DemandVariance > 0 {
		r.BullwhipRatio = r.OrderVariance / r.DemandVariance
	}
	return r
}

// variance is the population variance of xs
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs))
}
