// Package cart implements the session cart: a tagged-union action type,
// a pure transition function over cart state, and a single-instance store
// that applies actions atomically relative to reads.
package cart

import "github.com/BlurryShady/gear-store-frontend/internal/domain"

// Action is one cart transition. Exactly one variant exists per
// operation; each carries only its required payload.
type Action interface {
	isAction()
	name() string
}

// AddItem appends a new line for the product or, when a line for the same
// product id already exists, increases its quantity; the existing line
// keeps the product it was created with. Quantities below 1 are raised
// to 1.
type AddItem struct {
	Product  domain.Product
	Quantity int
}

// RemoveItem deletes the line whose product id matches. Missing ids are a
// no-op.
type RemoveItem struct {
	ProductID int64
}

// ChangeQuantity adjusts the matching line's quantity by Delta, flooring
// at 1. The line is never deleted through this action; removal goes
// through RemoveItem. Missing ids are a no-op.
type ChangeQuantity struct {
	ProductID int64
	Delta     int
}

// Clear resets the cart to the empty sequence.
type Clear struct{}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (ChangeQuantity) isAction() {}
func (Clear) isAction()          {}

func (AddItem) name() string        { return "add_item" }
func (RemoveItem) name() string     { return "remove_item" }
func (ChangeQuantity) name() string { return "change_quantity" }
func (Clear) name() string          { return "clear" }

// Apply is the pure transition function (state, action) -> state. It never
// mutates the previous state; no-op actions return it unchanged, same
// backing slice included.
func Apply(state domain.Cart, action Action) domain.Cart {
	switch a := action.(type) {
	case AddItem:
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		if i := state.FindLineIndex(a.Product.ID); i >= 0 {
			// The stored line keeps its product; a merge only adds quantity.
			items := cloneLines(state.Items)
			items[i].Quantity += qty
			return domain.Cart{Items: items}
		}
		items := make([]domain.LineItem, len(state.Items), len(state.Items)+1)
		copy(items, state.Items)
		items = append(items, domain.LineItem{Product: a.Product, Quantity: qty})
		return domain.Cart{Items: items}

	case RemoveItem:
		i := state.FindLineIndex(a.ProductID)
		if i < 0 {
			return state
		}
		items := make([]domain.LineItem, 0, len(state.Items)-1)
		items = append(items, state.Items[:i]...)
		items = append(items, state.Items[i+1:]...)
		return domain.Cart{Items: items}

	case ChangeQuantity:
		i := state.FindLineIndex(a.ProductID)
		if i < 0 {
			return state
		}
		items := cloneLines(state.Items)
		qty := items[i].Quantity + a.Delta
		if qty < 1 {
			qty = 1
		}
		items[i].Quantity = qty
		return domain.Cart{Items: items}

	case Clear:
		return domain.Cart{Items: []domain.LineItem{}}

	default:
		return state
	}
}

func cloneLines(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}
