package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"smartcart/infrastructure/sqlite"
	"smartcart/models"
)

func openTestStore(t *testing.T) (*Store, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "store-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return New(db), db
}

func TestLoadCart_EmptyWhenMissing(t *testing.T) {
	s, _ := openTestStore(t)

	items, err := s.LoadCart(context.Background())
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}

func TestSaveCart_RoundTrips(t *testing.T) {
	s, _ := openTestStore(t)

	in := []models.CartItem{
		{ID: "a", Code: "7891000100103", Name: "Leite Integral", Price: 5.49, Quantity: 2, Image: "data:image/jpeg;base64,Zm9v", Timestamp: 1700000000000},
		{ID: "b", Code: "7894900011517", Name: "Refrigerante 2L", Price: 9.9, Quantity: 1, Timestamp: 1700000001000},
	}
	if err := s.SaveCart(context.Background(), in); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	out, err := s.LoadCart(context.Background())
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d items, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("item %d changed in round-trip: %+v vs %+v", i, out[i], in[i])
		}
	}
}

func TestSaveCart_MissingImageStaysAbsent(t *testing.T) {
	s, db := openTestStore(t)

	in := []models.CartItem{{ID: "a", Code: "123", Name: "Sem Foto", Price: 1, Quantity: 1, Timestamp: 1}}
	if err := s.SaveCart(context.Background(), in); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	var raw string
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT value FROM kv_store WHERE key = ?`, CartKey).Scan(ctx, &raw)
	})
	if err != nil {
		t.Fatalf("read raw value: %v", err)
	}
	if strings.Contains(raw, `"image"`) {
		t.Fatalf("expected image field absent in serialized cart, got %s", raw)
	}
}

func TestSaveHistory_RoundTripsNestedItems(t *testing.T) {
	s, _ := openTestStore(t)

	in := []models.Purchase{
		{
			ID:        "p1",
			Timestamp: 1700000002000,
			Total:     25,
			ItemCount: 3,
			Items: []models.CartItem{
				{ID: "a", Code: "1", Name: "Um", Price: 10, Quantity: 2, Timestamp: 1},
				{ID: "b", Code: "2", Name: "Dois", Price: 5, Quantity: 1, Timestamp: 2},
			},
		},
	}
	if err := s.SaveHistory(context.Background(), in); err != nil {
		t.Fatalf("save history: %v", err)
	}

	out, err := s.LoadHistory(context.Background())
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(out))
	}
	got := out[0]
	if got.ID != "p1" || got.Total != 25 || got.ItemCount != 3 {
		t.Fatalf("purchase header changed in round-trip: %+v", got)
	}
	if len(got.Items) != 2 || got.Items[0] != in[0].Items[0] || got.Items[1] != in[0].Items[1] {
		t.Fatalf("purchase items changed in round-trip: %+v", got.Items)
	}
}

func TestLoad_CorruptedValueFallsBackToEmpty(t *testing.T) {
	s, db := openTestStore(t)

	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES (?, ?)`, CartKey, "{not json")
		return err
	})
	if err != nil {
		t.Fatalf("seed corrupted value: %v", err)
	}

	items, err := s.LoadCart(context.Background())
	if err != nil {
		t.Fatalf("load cart should not fail on corruption: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty fallback, got %d items", len(items))
	}
}

func TestSaveAll_WritesBothKeys(t *testing.T) {
	s, _ := openTestStore(t)

	items := []models.CartItem{{ID: "a", Code: "1", Name: "Um", Price: 2, Quantity: 1, Timestamp: 1}}
	purchases := []models.Purchase{{ID: "p1", Timestamp: 2, Total: 2, ItemCount: 1, Items: items}}
	if err := s.SaveAll(context.Background(), nil, purchases); err != nil {
		t.Fatalf("save all: %v", err)
	}

	gotItems, err := s.LoadCart(context.Background())
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(gotItems) != 0 {
		t.Fatalf("expected cleared cart, got %d items", len(gotItems))
	}
	gotHistory, err := s.LoadHistory(context.Background())
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(gotHistory) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(gotHistory))
	}
}
