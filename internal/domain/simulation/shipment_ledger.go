package simulation

import (
	"sort"

	"github.com/andrescamacho/sc-commander/internal/domain/shared"
)

// Shipment is an order in transit
type Shipment struct {
	ArrivalWeek int
	Quantity    int
}

// ShipmentLedger is the queue of pending orders. Methods return a new ledger
// and never modify the receiver's backing array.
type ShipmentLedger struct {
	shipments []Shipment
}

// NewShipmentLedger builds a ledger from existing shipments, dropping empty ones
func NewShipmentLedger(shipments ...Shipment) ShipmentLedger {
	var l ShipmentLedger
	for _, s := range shipments {
		if s.Quantity > 0 {
			l.shipments = append(l.shipments, s)
		}
	}
	return l
}

// Enqueue adds an order arriving in arrivalWeek. Zero quantities are dropped.
func (l ShipmentLedger) Enqueue(arrivalWeek, quantity int) (ShipmentLedger, error) {
	if quantity < 0 {
		return l, shared.NewValidationError("quantity", "shipment quantity cannot be negative")
	}
	if quantity == 0 {
		return l, nil
	}
	next := make([]Shipment, len(l.shipments), len(l.shipments)+1)
	copy(next, l.shipments)
	next = append(next, Shipment{ArrivalWeek: arrivalWeek, Quantity: quantity})
	return ShipmentLedger{shipments: next}, nil
}

// Drain returns the quantity arriving in week and the ledger with every
// shipment due on or before week removed.
func (l ShipmentLedger) Drain(week int) (int, ShipmentLedger) {
	arrivals := 0
	var remaining []Shipment
	for _, s := range l.shipments {
		switch {
		case s.ArrivalWeek == week:
			arrivals += s.Quantity
		case s.ArrivalWeek > week:
			remaining = append(remaining, s)
		}
	}
	return arrivals, ShipmentLedger{shipments: remaining}
}

// Pending returns a copy of the shipments ordered by arrival week
func (l ShipmentLedger) Pending() []Shipment {
	out := make([]Shipment, len(l.shipments))
	copy(out, l.shipments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ArrivalWeek < out[j].ArrivalWeek })
	return out
}

// TotalQuantity is the pipeline inventory still in transit
func (l ShipmentLedger) TotalQuantity() int {
	total := 0
	for _, s := range l.shipments {
		total += s.Quantity
	}
	return total
}

// Len returns the number of shipments in transit
func (l ShipmentLedger) Len() int {
	return len(l.shipments)
}
