// Package pricesheet stores the uploaded per-vendor price sheets of a session.
package pricesheet

import (
	"fmt"
	"slices"

	"github.com/jask/orderguide/internal/table"
)

// Store maps vendor IDs to their latest price sheet. Iteration follows the
// order in which each vendor first uploaded; a re-upload keeps that slot.
type Store struct {
	order  []int
	sheets map[int]table.Table
}

func NewStore() *Store {
	return &Store{sheets: make(map[int]table.Table)}
}

// Upload parses raw as CSV and replaces the vendor's sheet. On a parse error
// the store is left exactly as it was.
func (s *Store) Upload(vendorID int, raw []byte) (table.Table, error) {
	sheet, err := table.ParseCSV(raw)
	if err != nil {
		return table.Table{}, fmt.Errorf("parse price sheet: %w", err)
	}
	s.Put(vendorID, sheet)
	return sheet.Clone(), nil
}

// Put stores an already-parsed sheet.
func (s *Store) Put(vendorID int, sheet table.Table) {
	if _, ok := s.sheets[vendorID]; !ok {
		s.order = append(s.order, vendorID)
	}
	s.sheets[vendorID] = sheet.Clone()
}

func (s *Store) Has(vendorID int) bool {
	_, ok := s.sheets[vendorID]
	return ok
}

// SizeOf returns the row count of the vendor's sheet, 0 when none is stored.
func (s *Store) SizeOf(vendorID int) int {
	return s.sheets[vendorID].Len()
}

// Get returns a copy of the vendor's sheet.
func (s *Store) Get(vendorID int) (table.Table, bool) {
	sheet, ok := s.sheets[vendorID]
	if !ok {
		return table.Table{}, false
	}
	return sheet.Clone(), true
}

func (s *Store) Len() int { return len(s.order) }

// VendorIDs lists vendor IDs in iteration order.
func (s *Store) VendorIDs() []int {
	return slices.Clone(s.order)
}

// Each calls fn for every stored sheet in iteration order, stopping at the
// first error. fn receives the stored sheet itself and must not modify it.
func (s *Store) Each(fn func(vendorID int, sheet table.Table) error) error {
	for _, id := range s.order {
		if err := fn(id, s.sheets[id]); err != nil {
			return err
		}
	}
	return nil
}
