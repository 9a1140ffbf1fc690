package draft_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/draft"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reloj simulado: los temporizadores solo disparan al llamar Advance.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) draft.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance mueve el reloj y ejecuta (fuera del lock) los temporizadores vencidos.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

// Pending cuenta temporizadores vivos.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacenamiento local simulado.
// ──────────────────────────────────────────────────────────────────────────────

type fakeScratch struct {
	mu      sync.Mutex
	data    map[string][]byte
	writes  int
	failSet bool
}

func newFakeScratch() *fakeScratch { return &fakeScratch{data: make(map[string][]byte)} }

func (s *fakeScratch) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	return b, ok, nil
}

func (s *fakeScratch) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("cuota excedida")
	}
	s.writes++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *fakeScratch) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *fakeScratch) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicio de registros simulado (implementa repository.StockListRepository).
// ──────────────────────────────────────────────────────────────────────────────

type fakeLists struct {
	mu          sync.Mutex
	lists       map[string]*entity.StockList
	writes      [][]repository.QuantityUpdate
	finalized   []string
	submitters  []string
	failWrite   error
	failFinal   error
	blockWrite  chan struct{} // si no es nil, UpdateQuantities espera a que se cierre
	writeEnters chan struct{}
}

func newFakeLists(lists ...*entity.StockList) *fakeLists {
	f := &fakeLists{lists: make(map[string]*entity.StockList)}
	for _, l := range lists {
		f.lists[l.ID] = l
	}
	return f
}

func (f *fakeLists) GetByID(_ context.Context, id string) (*entity.StockList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	cp.Items = append([]entity.StockItemRef(nil), l.Items...)
	return &cp, nil
}

func (f *fakeLists) UpdateQuantities(_ context.Context, listID string, items []repository.QuantityUpdate) error {
	if f.writeEnters != nil {
		f.writeEnters <- struct{}{}
	}
	if f.blockWrite != nil {
		<-f.blockWrite
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.writes = append(f.writes, items)
	if l, ok := f.lists[listID]; ok {
		for _, u := range items {
			for i := range l.Items {
				if l.Items[i].ID == u.StockItemRefID {
					l.Items[i].CurrentQuantity = u.CurrentQuantity
				}
			}
		}
	}
	return nil
}

func (f *fakeLists) Finalize(_ context.Context, listID, submittedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFinal != nil {
		return f.failFinal
	}
	f.finalized = append(f.finalized, listID)
	f.submitters = append(f.submitters, submittedBy)
	return nil
}

func (f *fakeLists) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos de prueba.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func stockRef(id, min, current string) entity.StockItemRef {
	return entity.StockItemRef{
		ID:              id,
		CatalogItem:     entity.CatalogItem{ID: "cat-" + id, Name: "Insumo " + id, Unit: "kg"},
		MinimumQuantity: dec(min),
		CurrentQuantity: dec(current),
	}
}

const testRestaurant = "rest-1"

func kitchenList() *entity.StockList {
	return &entity.StockList{
		ID:           "list-1",
		RestaurantID: testRestaurant,
		Name:         "Cocina",
		Status:       entity.StockListStatusOpen,
		Items: []entity.StockItemRef{
			stockRef("1", "10", "10"),
			stockRef("2", "5", "0"),
		},
	}
}
