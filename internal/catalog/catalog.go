// Package catalog owns the authoritative in-memory product collection and
// dispatches every mutation through a pure reducer. Each transition is
// mirrored to the snapshot store and fanned out to subscribers.
package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"catalog-desk/internal/domain"
	"catalog-desk/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog is the single entry point for product state. All operations are
// serialized: one dispatch runs to completion, including persistence and
// subscriber notification, before the next begins.
type Catalog struct {
	dispatchMu sync.Mutex
	state      State

	store       store.Store
	snapshotKey string
	logger      *zap.Logger

	subsMu sync.Mutex
	subs   map[int]func([]domain.Product)
	nextID int

	now   func() time.Time
	newID func() string
}

// New creates a Catalog seeded from the snapshot store. A missing or
// malformed snapshot seeds an empty collection; the store is never written
// during construction.
func New(ctx context.Context, st store.Store, snapshotKey string, logger *zap.Logger) *Catalog {
	c := &Catalog{
		store:       st,
		snapshotKey: snapshotKey,
		logger:      logger,
		subs:        make(map[int]func([]domain.Product)),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
	c.state = Reduce(State{}, SetProducts{Products: c.load(ctx)})
	return c
}

func (c *Catalog) load(ctx context.Context) []domain.Product {
	raw, err := c.store.Get(ctx, c.snapshotKey)
	if err != nil {
		if err != store.ErrKeyNotFound {
			c.logger.Warn("Failed to read catalog snapshot, starting empty", zap.Error(err))
		}
		return nil
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("Malformed catalog snapshot, starting empty", zap.Error(err))
		return nil
	}

	c.logger.Info("Catalog seeded from snapshot", zap.Int("products", len(products)))
	return products
}

// Add assigns a fresh ID and creation timestamps to the draft and prepends it
// to the collection. It always succeeds.
func (c *Catalog) Add(draft domain.Draft) domain.Product {
	now := c.now()
	product := domain.Product{
		ID:          c.newID(),
		Name:        draft.Name,
		Price:       draft.Price,
		Category:    draft.Category,
		Stock:       draft.Stock,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.dispatch("add", AddProduct{Product: product})
	return product
}

// Update merges patch into the product with the given ID and refreshes its
// UpdatedAt. An unknown ID is a silent no-op; the second return value reports
// whether anything changed.
func (c *Catalog) Update(id string, patch domain.Patch) (domain.Product, bool) {
	c.dispatchMu.Lock()
	exists := false
	for i := range c.state.Products {
		if c.state.Products[i].ID == id {
			exists = true
			break
		}
	}
	if !exists {
		c.dispatchMu.Unlock()
		return domain.Product{}, false
	}

	next := Reduce(c.state, UpdateProduct{ID: id, Patch: patch, Now: c.now()})
	var updated domain.Product
	for i := range next.Products {
		if next.Products[i].ID == id {
			updated = next.Products[i]
			break
		}
	}
	c.commit("update", next)
	return updated, true
}

// Delete removes the product with the given ID, keeping a snapshot for undo.
// Unknown IDs are silent no-ops.
func (c *Catalog) Delete(id string) {
	c.dispatch("delete", DeleteProduct{ID: id})
}

// DeleteMultiple removes every product whose ID appears in ids. Duplicates in
// ids are harmless and unknown IDs are skipped.
func (c *Catalog) DeleteMultiple(ids []string) {
	c.dispatch("delete_multiple", DeleteProducts{IDs: ids})
}

// Undo restores the most recently deleted product, preserving its original ID
// and timestamps. It reports false when there is nothing to restore.
func (c *Catalog) Undo() (domain.Product, bool) {
	c.dispatchMu.Lock()
	if len(c.state.RecentlyDeleted) == 0 {
		c.dispatchMu.Unlock()
		return domain.Product{}, false
	}
	restored := c.state.RecentlyDeleted[0]
	c.commit("undo", Reduce(c.state, UndoDelete{}))
	return restored, true
}

// CanUndo reports whether any deleted snapshot remains to restore.
func (c *Catalog) CanUndo() bool {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	return len(c.state.RecentlyDeleted) > 0
}

// Products returns a copy of the live collection, newest first.
func (c *Catalog) Products() []domain.Product {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	return cloneProducts(c.state.Products)
}

// Len returns the number of live products.
func (c *Catalog) Len() int {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	return len(c.state.Products)
}

// Subscribe registers fn to run after every state transition with a copy of
// the new collection. The returned function cancels the subscription.
func (c *Catalog) Subscribe(fn func([]domain.Product)) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Catalog) dispatch(op string, action Action) {
	c.dispatchMu.Lock()
	c.commit(op, Reduce(c.state, action))
}

// commit installs the new state, mirrors it to the store, counts the
// operation, and notifies subscribers. Called with dispatchMu held; it
// releases the lock. The snapshot write happens under the lock so a later
// transition can never be overwritten by an earlier, staler snapshot.
// Subscribers run outside the lock and may read the catalog freely.
func (c *Catalog) commit(op string, next State) {
	c.state = next
	products := cloneProducts(next.Products)
	c.persist(products)
	c.dispatchMu.Unlock()

	operationsTotal.WithLabelValues(op).Inc()
	c.notify(products)
}

// persist mirrors the collection to the snapshot store. Writes are
// best-effort: a failure is logged and the in-memory state stays
// authoritative.
func (c *Catalog) persist(products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Error("Failed to serialize catalog snapshot", zap.Error(err))
		return
	}
	if err := c.store.Set(context.Background(), c.snapshotKey, raw); err != nil {
		c.logger.Error("Failed to write catalog snapshot", zap.Error(err))
	}
}

func (c *Catalog) notify(products []domain.Product) {
	c.subsMu.Lock()
	subs := make([]func([]domain.Product), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range subs {
		fn(products)
	}
}
