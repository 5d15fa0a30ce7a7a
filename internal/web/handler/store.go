package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/services/cart"
	"github.com/butiken/storefront/internal/storage"
	"github.com/butiken/storefront/internal/web/middleware"
	"github.com/butiken/storefront/internal/web/view"
)

// StoreHandler serves the product listing and add-to-cart
type StoreHandler struct {
	storage storage.Store
	carts   *cart.Engine
	logger  *slog.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(store storage.Store, carts *cart.Engine, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		storage: store,
		carts:   carts,
		logger:  logger,
	}
}

// Home renders the storefront. A productId query parameter adds that
// product to the visitor's cart before the page renders, so the add is a
// plain link from the listing.
func (h *StoreHandler) Home(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())

	lastQuantity := 0
	if raw := r.URL.Query().Get("productId"); raw != "" {
		productID, err := strconv.Atoi(raw)
		if err != nil {
			RenderError(w, http.StatusBadRequest, "Invalid product.")
			return
		}
		quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
		if err != nil {
			RenderError(w, http.StatusBadRequest, "Invalid quantity.")
			return
		}

		err = h.carts.AddItem(r.Context(), state.Identity, state.Session, model.ProductID(productID), quantity)
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			RenderError(w, http.StatusBadRequest, "Invalid quantity.")
			return
		case err != nil:
			h.logger.Error("add to cart failed",
				slog.Int("product_id", productID),
				slog.String("error", err.Error()))
			RenderError(w, http.StatusInternalServerError, "Retrieval and/or updating of shopping cart failed.")
			return
		}
		lastQuantity = quantity
	}

	products, err := h.storage.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("product listing failed",
			slog.String("error", err.Error()))
		RenderError(w, http.StatusInternalServerError, "Product listing failed.")
		return
	}

	pieces := view.Sections(view.Page("store"))

	var b strings.Builder
	b.WriteString(fillAccountHeader(pieces[0], state))
	for _, p := range products {
		row := pieces[1]
		row = view.Replace(row, "---product_id---", strconv.Itoa(int(p.ID)))
		row = view.Replace(row, "---product_name---", p.Name)
		row = view.Replace(row, "---product_desc---", p.Description)
		row = view.Replace(row, "---product_price---", model.FormatPrice(p.Price))
		// The dropdown keeps the quantity the visitor just used
		if lastQuantity > 0 {
			row = view.SelectOption(row, lastQuantity)
		}
		b.WriteString(row)
	}
	b.WriteString(pieces[2])

	writeHTML(w, http.StatusOK, b.String())
}
