package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"catalog-desk/internal/domain"
	"catalog-desk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return New(context.Background(), mem, "test-products", zap.NewNop()), mem
}

func draft(name string) domain.Draft {
	return domain.Draft{
		Name:     name,
		Price:    9.99,
		Category: "Other",
		Stock:    1,
	}
}

func TestAdd_PrependsNewestFirst(t *testing.T) {
	cat, _ := newTestCatalog(t)

	first := cat.Add(draft("First"))
	second := cat.Add(draft("Second"))

	products := cat.Products()
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, first.ID, products[1].ID)
}

func TestAdd_AssignsIDAndEqualTimestamps(t *testing.T) {
	cat, _ := newTestCatalog(t)

	product := cat.Add(draft("Lamp"))

	assert.NotEmpty(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestUpdate_MergesAndRefreshesUpdatedAt(t *testing.T) {
	cat, _ := newTestCatalog(t)
	created := cat.Add(draft("Lamp"))

	newName := "Desk Lamp"
	newPrice := 24.50
	updated, ok := cat.Update(created.ID, domain.Patch{Name: &newName, Price: &newPrice})

	require.True(t, ok)
	assert.Equal(t, "Desk Lamp", updated.Name)
	assert.Equal(t, 24.50, updated.Price)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdate_PreservesPosition(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Add(draft("A"))
	b := cat.Add(draft("B"))
	cat.Add(draft("C"))

	newName := "B2"
	_, ok := cat.Update(b.ID, domain.Patch{Name: &newName})
	require.True(t, ok)

	products := cat.Products()
	require.Len(t, products, 3)
	assert.Equal(t, b.ID, products[1].ID)
	assert.Equal(t, "B2", products[1].Name)
}

func TestUpdate_UnknownIDIsSilentNoOp(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Add(draft("Lamp"))

	before, err := json.Marshal(cat.Products())
	require.NoError(t, err)

	name := "Ghost"
	_, ok := cat.Update("no-such-id", domain.Patch{Name: &name})
	assert.False(t, ok)

	after, err := json.Marshal(cat.Products())
	require.NoError(t, err)
	assert.Equal(t, before, after, "collection must be byte-for-byte unchanged")
}

func TestDelete_RemovesAndRecordsSnapshot(t *testing.T) {
	cat, _ := newTestCatalog(t)
	product := cat.Add(draft("Lamp"))

	cat.Delete(product.ID)

	assert.Equal(t, 0, cat.Len())
	assert.True(t, cat.CanUndo())
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Add(draft("Lamp"))

	cat.Delete("no-such-id")

	assert.Equal(t, 1, cat.Len())
	assert.False(t, cat.CanUndo())
}

func TestUndo_RestoresIdenticalProduct(t *testing.T) {
	cat, _ := newTestCatalog(t)
	original := cat.Add(domain.Draft{
		Name:        "Lamp",
		Price:       24.50,
		Category:    "Home",
		Stock:       3,
		Description: "Warm light",
		ImageURL:    "https://example.com/lamp.png",
	})

	cat.Delete(original.ID)
	restored, ok := cat.Undo()

	require.True(t, ok)
	assert.Equal(t, original, restored)
	assert.False(t, cat.CanUndo())

	products := cat.Products()
	require.Len(t, products, 1)
	assert.Equal(t, original, products[0])
}

func TestUndo_EmptyHistoryIsNoOp(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Add(draft("Lamp"))

	_, ok := cat.Undo()

	assert.False(t, ok)
	assert.Equal(t, 1, cat.Len())
}

func TestUndo_RepeatedCallsPopThroughHistory(t *testing.T) {
	cat, _ := newTestCatalog(t)
	a := cat.Add(draft("A"))
	b := cat.Add(draft("B"))

	cat.Delete(a.ID)
	cat.Delete(b.ID)

	restored, ok := cat.Undo()
	require.True(t, ok)
	assert.Equal(t, b.ID, restored.ID, "most recent deletion restores first")

	restored, ok = cat.Undo()
	require.True(t, ok)
	assert.Equal(t, a.ID, restored.ID)

	_, ok = cat.Undo()
	assert.False(t, ok)
}

func TestDeleteMultiple_SetSemantics(t *testing.T) {
	cat, _ := newTestCatalog(t)
	a := cat.Add(draft("A"))
	b := cat.Add(draft("B"))
	c := cat.Add(draft("C"))

	// Duplicates and unknown IDs are harmless
	cat.DeleteMultiple([]string{a.ID, c.ID, a.ID, "no-such-id"})

	products := cat.Products()
	require.Len(t, products, 1)
	assert.Equal(t, b.ID, products[0].ID)
}

func TestDeleteMultiple_NewDeletionsLeadHistory(t *testing.T) {
	cat, _ := newTestCatalog(t)
	old := cat.Add(draft("Old"))
	a := cat.Add(draft("A"))
	b := cat.Add(draft("B"))

	cat.Delete(old.ID)
	cat.DeleteMultiple([]string{a.ID, b.ID})

	// Undo order: batch snapshots (in collection order) before older history
	restored, _ := cat.Undo()
	assert.Equal(t, b.ID, restored.ID)
	restored, _ = cat.Undo()
	assert.Equal(t, a.ID, restored.ID)
	restored, _ = cat.Undo()
	assert.Equal(t, old.ID, restored.ID)
}

func TestRecentlyDeleted_CapsAtfive(t *testing.T) {
	cat, _ := newTestCatalog(t)

	var products []domain.Product
	for i := 0; i < 7; i++ {
		products = append(products, cat.Add(draft(fmt.Sprintf("P%d", i))))
	}
	for _, p := range products {
		cat.Delete(p.ID)
	}

	// Only the 5 most recent deletions survive: P6..P2
	var restored []string
	for {
		p, ok := cat.Undo()
		if !ok {
			break
		}
		restored = append(restored, p.Name)
	}
	assert.Equal(t, []string{"P6", "P5", "P4", "P3", "P2"}, restored)
}

func TestPersistence_MirrorsEveryTransition(t *testing.T) {
	cat, mem := newTestCatalog(t)
	product := cat.Add(draft("Lamp"))

	raw, err := mem.Get(context.Background(), "test-products")
	require.NoError(t, err)

	var stored []domain.Product
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, product.ID, stored[0].ID)

	cat.Delete(product.ID)

	raw, err = mem.Get(context.Background(), "test-products")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Empty(t, stored)
}

func TestPersistence_TimestampsRoundTrip(t *testing.T) {
	cat, mem := newTestCatalog(t)
	product := cat.Add(draft("Lamp"))

	raw, err := mem.Get(context.Background(), "test-products")
	require.NoError(t, err)

	var stored []domain.Product
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.True(t, product.CreatedAt.Equal(stored[0].CreatedAt))
	assert.True(t, product.UpdatedAt.Equal(stored[0].UpdatedAt))
}

func TestNew_SeedsFromSnapshot(t *testing.T) {
	mem := store.NewMemory()
	seeded := []domain.Product{
		{ID: "p1", Name: "Lamp", Price: 24.50, Category: "Home", Stock: 3},
	}
	raw, err := json.Marshal(seeded)
	require.NoError(t, err)
	require.NoError(t, mem.Set(context.Background(), "test-products", raw))

	cat := New(context.Background(), mem, "test-products", zap.NewNop())

	products := cat.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestNew_MalformedSnapshotSeedsEmpty(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(context.Background(), "test-products", []byte("{not json")))

	cat := New(context.Background(), mem, "test-products", zap.NewNop())
	assert.Equal(t, 0, cat.Len())
}

func TestSubscribe_NotifiesAfterEveryTransition(t *testing.T) {
	cat, _ := newTestCatalog(t)

	var seen [][]domain.Product
	unsubscribe := cat.Subscribe(func(products []domain.Product) {
		seen = append(seen, products)
	})

	product := cat.Add(draft("Lamp"))
	require.Len(t, seen, 1)
	assert.Equal(t, product.ID, seen[0][0].ID)

	unsubscribe()
	cat.Delete(product.ID)
	assert.Len(t, seen, 1, "unsubscribed observer must not fire")
}
