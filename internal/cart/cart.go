// Package cart holds the session-scoped shopping cart: a mapping from
// product id to quantity, serialized into the visitor's cookie session.
// Nothing here touches durable storage.
package cart

import (
	"encoding/gob"
	"errors"
	"sort"

	"github.com/athanas-ai/nakhasbit/internal/models"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

const sessionKey = "cart"

// Cart maps product id to quantity. Quantities are always >= 1; removing
// an item deletes the key rather than zeroing it.
type Cart map[int]int

// Register for gob encoding (used by gorilla sessions).
func init() {
	gob.Register(Cart{})
}

// FromSession reads the cart out of the session, returning an empty cart
// if none has been stored yet.
func FromSession(session *sessions.Session) Cart {
	if c, ok := session.Values[sessionKey].(Cart); ok {
		return c
	}
	return Cart{}
}

// Save writes the cart back into the session values. The caller still has
// to save the session itself.
func (c Cart) Save(session *sessions.Session) {
	session.Values[sessionKey] = c
}

func (c Cart) Add(productID int) {
	c[productID]++
}

// Remove deletes the entry entirely; removing an absent id is a no-op.
func (c Cart) Remove(productID int) {
	delete(c, productID)
}

// Line is one rendered cart row: the current product record, the quantity
// held in the session, and the line total.
type Line struct {
	Product  models.Product
	Quantity int
	Total    decimal.Decimal
}

// Resolve looks up each cart entry against the current catalog and computes
// line totals plus the grand total. Entries whose product no longer exists
// are silently dropped, so a stale cart never errors. Lines come back in
// product-id order to keep rendering stable.
func Resolve(c Cart, lookup func(id int) (*models.Product, error)) ([]Line, decimal.Decimal, error) {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var lines []Line
	total := decimal.Zero
	for _, id := range ids {
		product, err := lookup(id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		qty := c[id]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		lines = append(lines, Line{Product: *product, Quantity: qty, Total: lineTotal})
		total = total.Add(lineTotal)
	}
	return lines, total, nil
}
