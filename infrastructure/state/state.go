package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartcart/infrastructure/store"
	"smartcart/models"
)

// ErrEmptyCart blocks checkout when there is nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// Options selects between the divergent behaviors of the app variants.
type Options struct {
	// PrefillFromLastSeen re-uses name/price from the most recent line
	// with the same code (cart first, then history).
	PrefillFromLastSeen bool
}

// DefaultOptions matches the most complete app variant.
func DefaultOptions() Options {
	return Options{PrefillFromLastSeen: true}
}

// App owns the live cart and the purchase history. Both collections
// are loaded once at startup and re-serialized write-through on every
// mutation. HTTP handlers are the only callers, so a single mutex is
// all the coordination needed.
type App struct {
	mu      sync.Mutex
	store   *store.Store
	opts    Options
	items   []models.CartItem
	history []models.Purchase

	now   func() time.Time
	newID func() string
}

// Load builds the app state from the persistent store.
func Load(ctx context.Context, st *store.Store, opts Options) (*App, error) {
	items, err := st.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	history, err := st.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return &App{
		store:   st,
		opts:    opts,
		items:   items,
		history: history,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// NewItem builds a CartItem with a fresh id and timestamp. Validation
// of price and quantity happens here, at entry time.
func (a *App) NewItem(code, name string, price float64, quantity int64, image string) (models.CartItem, error) {
	if price <= 0 {
		return models.CartItem{}, fmt.Errorf("price must be greater than 0")
	}
	if quantity < 1 {
		return models.CartItem{}, fmt.Errorf("quantity must be at least 1")
	}
	return models.CartItem{
		ID:        a.newID(),
		Code:      code,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		Image:     image,
		Timestamp: a.now().UnixMilli(),
	}, nil
}

// AddItem prepends the item to the cart (newest first). Duplicate
// codes are never merged; every scan is its own line.
func (a *App) AddItem(ctx context.Context, item models.CartItem) error {
	if item.Price <= 0 || item.Quantity < 1 {
		return fmt.Errorf("invalid cart item: price=%v quantity=%d", item.Price, item.Quantity)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	next := make([]models.CartItem, 0, len(a.items)+1)
	next = append(next, item)
	next = append(next, a.items...)
	if err := a.store.SaveCart(ctx, next); err != nil {
		return err
	}
	a.items = next
	return nil
}

// RemoveItem deletes the line with the given id. Unknown ids are a
// no-op and do not touch the store.
func (a *App) RemoveItem(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := make([]models.CartItem, 0, len(a.items))
	for _, item := range a.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == len(a.items) {
		return nil
	}
	if err := a.store.SaveCart(ctx, next); err != nil {
		return err
	}
	a.items = next
	return nil
}

// ClearCart empties the cart. Confirmation is the UI layer's job.
func (a *App) ClearCart(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := make([]models.CartItem, 0)
	if err := a.store.SaveCart(ctx, next); err != nil {
		return err
	}
	a.items = next
	return nil
}

// Items returns a copy of the cart, newest first.
func (a *App) Items() []models.CartItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.CartItem(nil), a.items...)
}

// Total is the sum of price times quantity over the live cart.
func (a *App) Total() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cartTotal(a.items)
}

// UnitCount is the sum of quantities over the live cart.
func (a *App) UnitCount() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cartUnits(a.items)
}

// Checkout freezes the cart into a Purchase, prepends it to history
// and clears the cart, persisting both collections in one transaction.
// An empty cart is rejected with ErrEmptyCart and no state change.
func (a *App) Checkout(ctx context.Context) (models.Purchase, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.items) == 0 {
		return models.Purchase{}, ErrEmptyCart
	}

	purchase := models.Purchase{
		ID:        a.newID(),
		Timestamp: a.now().UnixMilli(),
		Total:     cartTotal(a.items),
		ItemCount: cartUnits(a.items),
		Items:     append([]models.CartItem(nil), a.items...),
	}

	nextHistory := make([]models.Purchase, 0, len(a.history)+1)
	nextHistory = append(nextHistory, purchase)
	nextHistory = append(nextHistory, a.history...)
	emptyCart := make([]models.CartItem, 0)

	if err := a.store.SaveAll(ctx, emptyCart, nextHistory); err != nil {
		return models.Purchase{}, err
	}
	a.history = nextHistory
	a.items = emptyCart
	return purchase, nil
}

// History returns a copy of the purchases, newest first. Item slices
// are copied too so callers cannot reach the stored records.
func (a *App) History() []models.Purchase {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.Purchase, len(a.history))
	for i, p := range a.history {
		p.Items = append([]models.CartItem(nil), p.Items...)
		out[i] = p
	}
	return out
}

// PurchaseByID looks up one stored purchase.
func (a *App) PurchaseByID(id string) (models.Purchase, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.history {
		if p.ID == id {
			p.Items = append([]models.CartItem(nil), p.Items...)
			return p, true
		}
	}
	return models.Purchase{}, false
}

// ClearHistory wipes all purchases and leaves the cart untouched.
func (a *App) ClearHistory(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := make([]models.Purchase, 0)
	if err := a.store.SaveHistory(ctx, next); err != nil {
		return err
	}
	a.history = next
	return nil
}

// LastSeen finds the most recent line with the same code for name and
// price pre-fill: the live cart first (newest first), then history in
// most-recent-purchase order. Disabled via Options.
func (a *App) LastSeen(code string) (models.CartItem, bool) {
	if !a.opts.PrefillFromLastSeen || code == "" {
		return models.CartItem{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, item := range a.items {
		if item.Code == code {
			return item, true
		}
	}
	for _, p := range a.history {
		for _, item := range p.Items {
			if item.Code == code {
				return item, true
			}
		}
	}
	return models.CartItem{}, false
}

func cartTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func cartUnits(items []models.CartItem) int64 {
	var units int64
	for _, item := range items {
		units += item.Quantity
	}
	return units
}
