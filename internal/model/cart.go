package model

// CartItem is one persisted account-cart row, keyed uniquely by
// (Username, ProductID). Quantities accumulate; rows never duplicate.
type CartItem struct {
	Username  string
	ProductID ProductID
	Quantity  int
}

// CartLine is one resolved line of a cart view. UnitPrice and Name come
// from the catalog at read time. Missing products render as a line with
// zero price so a cart never breaks on a deleted product.
type CartLine struct {
	ProductID ProductID
	Name      string
	Quantity  int
	UnitPrice int64
	LineTotal int64
	Missing   bool // product no longer in the catalog
}

// CartView is the rendered state of a cart: the ordered lines and the
// grand total. Empty distinguishes "no cart" from a cart summing to zero.
type CartView struct {
	Lines []CartLine
	Total int64
	Empty bool
}
