package model

import (
	"github.com/shopspring/decimal"

	"github.com/protonstudio/invoice-builder/internal/money"
)

// ItemStore is the ordered line-item collection of one invoice. It owns
// the id counter, so identifiers are scoped to the invoice instance
// rather than the process. Insertion order is display order.
//
// The store is not safe for concurrent use; the builder serializes
// access the way the single-threaded edit loop of the UI does.
type ItemStore struct {
	nextID int64
	items  []LineItem
}

// NewItemStore creates an empty store.
func NewItemStore() *ItemStore {
	return &ItemStore{}
}

// Add appends a new item with defaults (empty description, price 0,
// quantity 1, discount 0) and returns its id.
func (s *ItemStore) Add() int64 {
	s.nextID++
	item := LineItem{
		ID:        s.nextID,
		Position:  len(s.items) + 1,
		UnitPrice: money.Zero,
		Quantity:  decimal.NewFromInt(1),
		Discount:  money.Zero,
	}
	item.Recalculate()
	s.items = append(s.items, item)
	return item.ID
}

// Remove deletes the item with the given id and renumbers the display
// positions of the remaining items. Unknown ids are a no-op. Ids of
// remaining items are never changed.
func (s *ItemStore) Remove(id int64) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.renumber()
			return
		}
	}
}

// Update merges the patch into the item with the given id and refreshes
// its derived amounts. Unknown ids are a no-op.
func (s *ItemStore) Update(id int64, patch ItemPatch) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if patch.Description != nil {
			s.items[i].Description = *patch.Description
		}
		if patch.UnitPrice != nil {
			s.items[i].UnitPrice = *patch.UnitPrice
		}
		if patch.Quantity != nil {
			s.items[i].Quantity = *patch.Quantity
		}
		if patch.Discount != nil {
			s.items[i].Discount = *patch.Discount
		}
		s.items[i].Recalculate()
		return
	}
}

// All returns a copy of the items in insertion order.
func (s *ItemStore) All() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of stored items, billable or not.
func (s *ItemStore) Len() int {
	return len(s.items)
}

// HasBillable reports whether at least one item has a description.
func (s *ItemStore) HasBillable() bool {
	for i := range s.items {
		if s.items[i].Billable() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, id counter included.
func (s *ItemStore) Clone() *ItemStore {
	cp := &ItemStore{nextID: s.nextID}
	cp.items = make([]LineItem, len(s.items))
	copy(cp.items, s.items)
	return cp
}

func (s *ItemStore) renumber() {
	for i := range s.items {
		s.items[i].Position = i + 1
	}
}
