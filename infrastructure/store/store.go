package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	"smartcart/infrastructure/sqlite"
	"smartcart/models"
)

// Storage keys. Each holds one JSON-serialized array, newest first.
const (
	CartKey    = "smart_cart_items"
	HistoryKey = "smart_cart_history"
)

// Store persists the two app collections as JSON text in the kv_store
// table. Writes are write-through: callers save after every mutation.
type Store struct {
	db *sqlite.DB
}

func New(db *sqlite.DB) *Store {
	return &Store{db: db}
}

// LoadCart reads the active cart. Missing or corrupted stored text
// yields an empty collection; corruption is logged, never fatal.
func (s *Store) LoadCart(ctx context.Context) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	raw, found, err := s.loadValue(ctx, CartKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("cart store corrupted; starting empty", slog.String("key", CartKey), slog.Any("err", err))
		return make([]models.CartItem, 0), nil
	}
	return items, nil
}

// LoadHistory reads the purchase history, newest first.
func (s *Store) LoadHistory(ctx context.Context) ([]models.Purchase, error) {
	purchases := make([]models.Purchase, 0)
	raw, found, err := s.loadValue(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return purchases, nil
	}
	if err := json.Unmarshal([]byte(raw), &purchases); err != nil {
		slog.Warn("history store corrupted; starting empty", slog.String("key", HistoryKey), slog.Any("err", err))
		return make([]models.Purchase, 0), nil
	}
	return purchases, nil
}

// SaveCart serializes and upserts the active cart.
func (s *Store) SaveCart(ctx context.Context, items []models.CartItem) error {
	raw, err := marshalCart(items)
	if err != nil {
		return err
	}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return saveValue(ctx, tx, CartKey, raw)
	})
}

// SaveHistory serializes and upserts the purchase history.
func (s *Store) SaveHistory(ctx context.Context, purchases []models.Purchase) error {
	raw, err := marshalHistory(purchases)
	if err != nil {
		return err
	}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return saveValue(ctx, tx, HistoryKey, raw)
	})
}

// SaveAll writes both collections in a single transaction. Checkout
// relies on this so the history append and cart clear land together.
func (s *Store) SaveAll(ctx context.Context, items []models.CartItem, purchases []models.Purchase) error {
	cartRaw, err := marshalCart(items)
	if err != nil {
		return err
	}
	historyRaw, err := marshalHistory(purchases)
	if err != nil {
		return err
	}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := saveValue(ctx, tx, CartKey, cartRaw); err != nil {
			return err
		}
		return saveValue(ctx, tx, HistoryKey, historyRaw)
	})
}

func marshalCart(items []models.CartItem) (string, error) {
	if items == nil {
		items = make([]models.CartItem, 0)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal cart: %w", err)
	}
	return string(raw), nil
}

func marshalHistory(purchases []models.Purchase) (string, error) {
	if purchases == nil {
		purchases = make([]models.Purchase, 0)
	}
	raw, err := json.Marshal(purchases)
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}
	return string(raw), nil
}

func (s *Store) loadValue(ctx context.Context, key string) (raw string, found bool, err error) {
	err = s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(ctx, &raw)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return raw, true, nil
}

func saveValue(ctx context.Context, tx bun.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO kv_store (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
  value = excluded.value,
  updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
