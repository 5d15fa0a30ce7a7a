package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/services/cart"
	"github.com/butiken/storefront/internal/web/middleware"
	"github.com/butiken/storefront/internal/web/view"
)

// CartHandler serves the shopping cart page and item removal
type CartHandler struct {
	carts  *cart.Engine
	logger *slog.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Engine, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// Show renders the cart. A removeId query parameter drops that product
// before the page renders; prices and names come from the catalog at
// render time, never from when the item was added.
func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetState(r.Context())

	if raw := r.URL.Query().Get("removeId"); raw != "" {
		productID, err := strconv.Atoi(raw)
		if err != nil {
			RenderError(w, http.StatusBadRequest, "Invalid product.")
			return
		}
		if err := h.carts.RemoveItem(r.Context(), state.Identity, state.Session, model.ProductID(productID)); err != nil {
			h.logger.Error("cart item removal failed",
				slog.Int("product_id", productID),
				slog.String("error", err.Error()))
			RenderError(w, http.StatusInternalServerError, "Retrieval and/or updating of shopping cart failed.")
			return
		}
	}

	cartView, err := h.carts.GetCart(r.Context(), state.Identity, state.Session)
	if err != nil {
		h.logger.Error("cart retrieval failed",
			slog.String("error", err.Error()))
		RenderError(w, http.StatusInternalServerError, "Retrieval and/or updating of shopping cart failed.")
		return
	}

	pieces := view.Sections(view.Page("cart"))

	var b strings.Builder
	header := fillAccountHeader(pieces[0], state)

	if cartView.Empty {
		header = view.Replace(header, "---cart_status---", "Your cart is empty")
		b.WriteString(header)
		b.WriteString(emptyCartRow(pieces[1]))
		b.WriteString(view.ReplaceHTML(pieces[2], "---total_price---", "-"))
		writeHTML(w, http.StatusOK, b.String())
		return
	}

	header = view.Replace(header, "---cart_status---", "Your selected items")
	b.WriteString(header)
	for _, line := range cartView.Lines {
		b.WriteString(cartRow(pieces[1], line))
	}
	b.WriteString(view.Replace(pieces[2], "---total_price---", model.FormatPrice(cartView.Total)))

	writeHTML(w, http.StatusOK, b.String())
}

func cartRow(row string, line model.CartLine) string {
	price := model.FormatPrice(line.UnitPrice)
	if line.Missing {
		price = "-"
	}
	id := strconv.Itoa(int(line.ProductID))
	row = view.Replace(row, "---product_name---", line.Name)
	row = view.Replace(row, "---product_id---", id)
	row = view.Replace(row, "---product_price---", price)
	row = view.Replace(row, "---product_quantity---", strconv.Itoa(line.Quantity))
	row = view.ReplaceHTML(row, "---remove_item_script---", "/cart?removeId="+id)
	row = view.ReplaceHTML(row, "---remove_item_text---", "Remove")
	return row
}

// emptyCartRow renders the single placeholder row an empty cart shows
func emptyCartRow(row string) string {
	row = view.Replace(row, "---product_name---", "N/A")
	row = view.Replace(row, "---product_id---", "")
	row = view.ReplaceHTML(row, "---product_price---", "-")
	row = view.Replace(row, "---product_quantity---", "0")
	row = view.ReplaceHTML(row, "---remove_item_script---", "")
	row = view.ReplaceHTML(row, "---remove_item_text---", "")
	return row
}
