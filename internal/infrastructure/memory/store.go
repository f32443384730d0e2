// Package memory is the in-process store driver. It mirrors the PostgreSQL
// driver's semantics behind the same repository ports and backs STORE_DRIVER=memory
// deployments and the test suite.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// Store holds every collection behind one lock. Entities are deep-copied on
// the way in and out, so callers never alias stored state.
type Store struct {
	mu sync.RWMutex

	users  map[string]*entity.User
	emails map[string]string // email -> user id

	products map[string]*entity.Product
	rfqs     map[string]*entity.RFQ
	orders   map[string]*entity.Order
	metrics  []*entity.ImpactMetric
	traces   map[string]*entity.Traceability // by batch number

	rfqSeq   int64
	orderSeq int64

	// txMu serializes transactional sections on top of mu.
	txMu sync.Mutex
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		users:    map[string]*entity.User{},
		emails:   map[string]string{},
		products: map[string]*entity.Product{},
		rfqs:     map[string]*entity.RFQ{},
		orders:   map[string]*entity.Order{},
		traces:   map[string]*entity.Traceability{},
	}
}

// clone deep-copies src into dst via JSON. All stored entities are plain
// data, so a marshal round trip is lossless.
func clone[T any](src *T) *T {
	raw, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	dst := new(T)
	if err := json.Unmarshal(raw, dst); err != nil {
		panic(err)
	}
	return dst
}
