package cart

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/session"
	"github.com/butiken/storefront/internal/storage"
)

// Errors
var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Engine owns cart reads, mutations and total-price computation for both
// guest (session-held) and account-bound (persisted) carts. The two carts
// are fully independent: switching identity never migrates contents from
// one into the other.
type Engine struct {
	storage storage.Store
	logger  *slog.Logger
}

// New creates a new cart Engine
func New(store storage.Store, logger *slog.Logger) *Engine {
	return &Engine{storage: store, logger: logger}
}

// GetCart reads the cart implied by the identity and resolves each line
// against the current catalog. Prices are never snapshotted at add time,
// so a catalog price change shows up on the next read. The grand total
// accumulates as each line resolves.
func (e *Engine) GetCart(ctx context.Context, id model.Identity, sess *session.Session) (*model.CartView, error) {
	if id.IsAuthenticated() {
		items, err := e.storage.GetCartItems(ctx, id.Username)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return &model.CartView{Empty: true}, nil
		}
		return e.resolve(ctx, items)
	}

	if len(sess.Cart) == 0 {
		return &model.CartView{Empty: true}, nil
	}

	items := make([]model.CartItem, 0, len(sess.Cart))
	for productID, qty := range sess.Cart {
		items = append(items, model.CartItem{ProductID: productID, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return e.resolve(ctx, items)
}

// AddItem accumulates quantity for a product. The account path delegates
// to the storage upsert, which is transactional and serializable per
// (username, product); any storage failure is fatal for the request. The
// guest path mutates session state owned by a single visitor.
func (e *Engine) AddItem(ctx context.Context, id model.Identity, sess *session.Session, productID model.ProductID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if id.IsAuthenticated() {
		return e.storage.UpsertCartItem(ctx, id.Username, productID, quantity)
	}

	sess.AddToCart(productID, quantity)
	return nil
}

// RemoveItem removes a product from the cart. Removing a product that is
// not present is a no-op for both paths.
func (e *Engine) RemoveItem(ctx context.Context, id model.Identity, sess *session.Session, productID model.ProductID) error {
	if id.IsAuthenticated() {
		return e.storage.RemoveCartItem(ctx, id.Username, productID)
	}

	sess.RemoveFromCart(productID)
	return nil
}

// resolve turns cart rows into a view, tolerating products that have left
// the catalog since they were added
func (e *Engine) resolve(ctx context.Context, items []model.CartItem) (*model.CartView, error) {
	view := &model.CartView{Lines: make([]model.CartLine, 0, len(items))}

	for _, item := range items {
		line := model.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		p, err := e.storage.GetProduct(ctx, item.ProductID)
		switch {
		case err == nil:
			line.Name = p.Name
			line.UnitPrice = p.Price
		case errors.Is(err, model.ErrProductNotFound):
			line.Name = "N/A"
			line.Missing = true
		default:
			return nil, err
		}

		line.LineTotal = line.UnitPrice * int64(line.Quantity)
		view.Total += line.LineTotal
		view.Lines = append(view.Lines, line)
	}

	return view, nil
}
