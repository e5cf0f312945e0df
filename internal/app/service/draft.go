package service

import (
	"errors"
	"fmt"
	"sync"

	"smartaccount_playground/internal/domain/entity"
)

var (
	ErrLastEntry    = errors.New("the last entry cannot be removed")
	ErrEntryIndex   = errors.New("entry index out of range")
	ErrUnknownField = errors.New("unknown entry field")
)

// Draft holds the editable entries for one mode. It always holds at least one entry.
type Draft struct {
	mode entity.CallMode

	mu      sync.RWMutex
	entries []entity.CallEntry
}

func NewDraft(mode entity.CallMode) *Draft {
	return &Draft{mode: mode, entries: []entity.CallEntry{entity.BlankEntry(mode)}}
}

func (d *Draft) Mode() entity.CallMode { return d.mode }

// Entries returns a copy of the current entries.
func (d *Draft) Entries() []entity.CallEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]entity.CallEntry(nil), d.entries...)
}

func (d *Draft) Add() []entity.CallEntry {
	d.mu.Lock()
	d.entries = append(d.entries, entity.BlankEntry(d.mode))
	d.mu.Unlock()
	return d.Entries()
}

func (d *Draft) Remove(index int) ([]entity.CallEntry, error) {
	d.mu.Lock()
	if index < 0 || index >= len(d.entries) {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrEntryIndex, index)
	}
	if len(d.entries) == 1 {
		d.mu.Unlock()
		return nil, ErrLastEntry
	}
	d.entries = append(d.entries[:index], d.entries[index+1:]...)
	d.mu.Unlock()
	return d.Entries(), nil
}

func (d *Draft) Update(index int, field, value string) ([]entity.CallEntry, error) {
	d.mu.Lock()
	if index < 0 || index >= len(d.entries) {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrEntryIndex, index)
	}
	if err := d.entries[index].Set(field, value); err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrUnknownField, err)
	}
	d.mu.Unlock()
	return d.Entries(), nil
}

// Replace swaps in a new list. An empty list becomes a single blank entry.
func (d *Draft) Replace(entries []entity.CallEntry) []entity.CallEntry {
	d.mu.Lock()
	if len(entries) == 0 {
		d.entries = []entity.CallEntry{entity.BlankEntry(d.mode)}
	} else {
		d.entries = append([]entity.CallEntry(nil), entries...)
	}
	d.mu.Unlock()
	return d.Entries()
}

// Reset clears the draft back to a single blank entry.
func (d *Draft) Reset() []entity.CallEntry {
	return d.Replace(nil)
}
