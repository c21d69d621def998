// Package catalog provides the read-only reference tune lookup used while
// building score records.
package catalog

import (
	"sync"

	"github.com/jukevis/jukevis/internal/datastore"
)

// Catalog is a lazily populated lookup from tune identifier to reference
// metadata. It performs one full table read on first use and never
// invalidates; construct a new Catalog when freshness matters.
type Catalog struct {
	ds    datastore.Interface
	limit int

	once  sync.Once
	tunes map[int]datastore.Tune
	err   error
}

// New creates a catalog backed by the given store. limit bounds the full
// table read.
func New(ds datastore.Interface, limit int) *Catalog {
	return &Catalog{ds: ds, limit: limit}
}

func (c *Catalog) load() {
	tunes, err := c.ds.GetAllTunes(c.limit)
	if err != nil {
		c.err = err
		return
	}
	m := make(map[int]datastore.Tune, len(tunes))
	for _, t := range tunes {
		m[t.TuneID] = t
	}
	c.tunes = m
}

// Lookup returns the tune with the given identifier. The second return value
// is false when the identifier has no catalog match. The first call populates
// the cache; a load failure is returned on every call.
func (c *Catalog) Lookup(tuneID int) (datastore.Tune, bool, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return datastore.Tune{}, false, c.err
	}
	tune, ok := c.tunes[tuneID]
	return tune, ok, nil
}

// Size returns the number of cached tunes, loading the catalog if needed.
func (c *Catalog) Size() (int, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return 0, c.err
	}
	return len(c.tunes), nil
}
