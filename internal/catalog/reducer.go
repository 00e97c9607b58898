package catalog

import (
	"time"

	"catalog-desk/internal/domain"
)

// State is the full state of the product collection: the live products,
// newest first, and a bounded most-recent-first history of deleted snapshots.
type State struct {
	Products        []domain.Product
	RecentlyDeleted []domain.Product
}

// Action is a closed set of state transitions; see the concrete types below.
type Action interface {
	isAction()
}

// SetProducts replaces the whole collection, used when seeding from the store.
type SetProducts struct {
	Products []domain.Product
}

// AddProduct prepends a fully-formed product to the collection.
type AddProduct struct {
	Product domain.Product
}

// UpdateProduct merges a patch into the product with the given ID. An unknown
// ID leaves the state untouched; that silence is part of the contract.
type UpdateProduct struct {
	ID    string
	Patch domain.Patch
	Now   time.Time
}

// DeleteProduct removes a product and records its snapshot for undo.
type DeleteProduct struct {
	ID string
}

// DeleteProducts removes every product whose ID appears in IDs, recording
// all removed snapshots ahead of the existing undo history.
type DeleteProducts struct {
	IDs []string
}

// UndoDelete restores the most recently deleted snapshot, keeping its
// original ID and timestamps.
type UndoDelete struct{}

func (SetProducts) isAction()    {}
func (AddProduct) isAction()     {}
func (UpdateProduct) isAction()  {}
func (DeleteProduct) isAction()  {}
func (DeleteProducts) isAction() {}
func (UndoDelete) isAction()     {}

// Reduce maps (state, action) to the next state. It is pure: inputs are never
// mutated and the returned state shares no slices with the old one along any
// modified path.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetProducts:
		return State{
			Products:        cloneProducts(a.Products),
			RecentlyDeleted: state.RecentlyDeleted,
		}

	case AddProduct:
		products := make([]domain.Product, 0, len(state.Products)+1)
		products = append(products, a.Product)
		products = append(products, state.Products...)
		return State{
			Products:        products,
			RecentlyDeleted: state.RecentlyDeleted,
		}

	case UpdateProduct:
		found := false
		products := make([]domain.Product, len(state.Products))
		for i, p := range state.Products {
			if p.ID == a.ID {
				merged := a.Patch.Apply(p)
				merged.UpdatedAt = a.Now
				products[i] = merged
				found = true
			} else {
				products[i] = p
			}
		}
		if !found {
			return state
		}
		return State{
			Products:        products,
			RecentlyDeleted: state.RecentlyDeleted,
		}

	case DeleteProduct:
		return Reduce(state, DeleteProducts{IDs: []string{a.ID}})

	case DeleteProducts:
		targets := make(map[string]struct{}, len(a.IDs))
		for _, id := range a.IDs {
			targets[id] = struct{}{}
		}

		kept := make([]domain.Product, 0, len(state.Products))
		var removed []domain.Product
		for _, p := range state.Products {
			if _, hit := targets[p.ID]; hit {
				removed = append(removed, p)
			} else {
				kept = append(kept, p)
			}
		}
		if len(removed) == 0 {
			return state
		}

		history := make([]domain.Product, 0, len(removed)+len(state.RecentlyDeleted))
		history = append(history, removed...)
		history = append(history, state.RecentlyDeleted...)
		if len(history) > domain.UndoHistoryLimit {
			history = history[:domain.UndoHistoryLimit]
		}
		return State{
			Products:        kept,
			RecentlyDeleted: history,
		}

	case UndoDelete:
		if len(state.RecentlyDeleted) == 0 {
			return state
		}
		restored := state.RecentlyDeleted[0]
		next := Reduce(state, AddProduct{Product: restored})
		next.RecentlyDeleted = cloneProducts(state.RecentlyDeleted[1:])
		return next

	default:
		return state
	}
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}
