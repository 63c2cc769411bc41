package model

import (
	"encoding/json"
	"fmt"
)

// Collection is a keyed set of records that remembers insertion order.
// It is persisted as a JSON array so that order survives a save/load cycle.
type Collection[R any] struct {
	keys  []string
	items map[string]R
}

type collectionEntry[R any] struct {
	Key    string `json:"key"`
	Record R      `json:"record"`
}

func NewCollection[R any]() *Collection[R] {
	return &Collection[R]{items: make(map[string]R)}
}

func (c *Collection[R]) Len() int {
	return len(c.keys)
}

func (c *Collection[R]) Get(key string) (R, bool) {
	r, ok := c.items[key]
	return r, ok
}

func (c *Collection[R]) Has(key string) bool {
	_, ok := c.items[key]
	return ok
}

// Put replaces an existing record in place or appends a new one.
func (c *Collection[R]) Put(key string, record R) {
	if c.items == nil {
		c.items = make(map[string]R)
	}
	if _, ok := c.items[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.items[key] = record
}

func (c *Collection[R]) Delete(key string) bool {
	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection[R]) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Values returns the records in insertion order.
func (c *Collection[R]) Values() []R {
	out := make([]R, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.items[k])
	}
	return out
}

func (c *Collection[R]) MarshalJSON() ([]byte, error) {
	entries := make([]collectionEntry[R], 0, len(c.keys))
	for _, k := range c.keys {
		entries = append(entries, collectionEntry[R]{Key: k, Record: c.items[k]})
	}
	return json.Marshal(entries)
}

func (c *Collection[R]) UnmarshalJSON(data []byte) error {
	var entries []collectionEntry[R]
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.keys = make([]string, 0, len(entries))
	c.items = make(map[string]R, len(entries))
	for _, e := range entries {
		if _, dup := c.items[e.Key]; dup {
			return fmt.Errorf("duplicate key %q in collection", e.Key)
		}
		c.keys = append(c.keys, e.Key)
		c.items[e.Key] = e.Record
	}
	return nil
}
