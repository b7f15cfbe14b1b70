package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateService = errors.New("service is already on another line of this order")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
	ErrLineNotFound     = errors.New("line does not exist")
)

// DefaultQuantity is used when a line is added without a quantity.
const DefaultQuantity = 1

// DraftLine is a Line plus the id of the persisted item it came from, zero for new lines.
type DraftLine struct {
	ItemID uint64
	Line
}

// Draft is an editing session over one order's items. Every mutation recomputes the total.
// Unit prices are captured only when a service is chosen.
type Draft struct {
	lookup PriceLookup
	lines  []DraftLine
	total  decimal.Decimal
}

func NewDraft(lookup PriceLookup) *Draft {
	return &Draft{lookup: lookup, total: decimal.Zero}
}

// LoadDraft resumes editing persisted lines, keeping their captured prices.
func LoadDraft(lookup PriceLookup, lines []DraftLine) *Draft {
	d := &Draft{lookup: lookup, lines: append([]DraftLine(nil), lines...)}
	d.recompute()
	return d
}

// Add appends a line and returns its index. Quantity 0 means the default quantity.
func (d *Draft) Add(ctx context.Context, serviceID uint64, quantity int) (int, error) {
	if quantity < 0 {
		return -1, ErrInvalidQuantity
	}
	if quantity == 0 {
		quantity = DefaultQuantity
	}
	if d.hasService(serviceID, -1) {
		return -1, ErrDuplicateService
	}

	d.lines = append(d.lines, DraftLine{Line: Line{
		ServiceID: serviceID,
		Quantity:  quantity,
		UnitPrice: CapturePrice(ctx, d.lookup, serviceID),
	}})
	d.recompute()
	return len(d.lines) - 1, nil
}

// SetService selects a service on an existing line and captures its price.
// Selecting the service the line already has keeps the captured price.
func (d *Draft) SetService(ctx context.Context, index int, serviceID uint64) error {
	if !d.valid(index) {
		return ErrLineNotFound
	}
	if d.lines[index].ServiceID == serviceID {
		return nil
	}
	if d.hasService(serviceID, index) {
		return ErrDuplicateService
	}

	d.lines[index].ServiceID = serviceID
	d.lines[index].UnitPrice = CapturePrice(ctx, d.lookup, serviceID)
	d.recompute()
	return nil
}

func (d *Draft) SetQuantity(index int, quantity int) error {
	if !d.valid(index) {
		return ErrLineNotFound
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	d.lines[index].Quantity = quantity
	d.recompute()
	return nil
}

func (d *Draft) Remove(index int) error {
	if !d.valid(index) {
		return ErrLineNotFound
	}
	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	d.recompute()
	return nil
}

// IndexOfItem finds the line loaded from the persisted item itemID.
func (d *Draft) IndexOfItem(itemID uint64) int {
	if itemID == 0 {
		return -1
	}
	for i, l := range d.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (d *Draft) Lines() []DraftLine {
	return append([]DraftLine(nil), d.lines...)
}

func (d *Draft) Total() decimal.Decimal {
	return d.total
}

func (d *Draft) valid(index int) bool {
	return index >= 0 && index < len(d.lines)
}

func (d *Draft) hasService(serviceID uint64, skip int) bool {
	if serviceID == 0 {
		return false
	}
	for i, l := range d.lines {
		if i != skip && l.ServiceID == serviceID {
			return true
		}
	}
	return false
}

func (d *Draft) recompute() {
	plain := make([]Line, len(d.lines))
	for i, l := range d.lines {
		plain[i] = l.Line
	}
	d.total = RecomputeTotal(plain)
}
