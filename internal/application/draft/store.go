// Package draft mantiene los conteos editados y aún no confirmados de una lista de stock,
// los compara contra la última línea base confirmada y guarda copias locales con debounce.
package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/quantity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// State estado global del Store.
type State string

const (
	StateLoaded     State = "LOADED"
	StateSaving     State = "SAVING"
	StateSubmitting State = "SUBMITTING"
)

// DefaultAutosaveQuiet periodo de inactividad antes de guardar el borrador local.
const DefaultAutosaveQuiet = 400 * time.Millisecond

const scratchWriteTimeout = 5 * time.Second

// Entry estado de borrador de una referencia.
// DraftValue es siempre el resultado del último parseo exitoso de RawText;
// RawText puede ser transitoriamente inválido mientras el usuario escribe.
type Entry struct {
	DraftValue    decimal.Decimal
	RawText       string
	BaselineValue decimal.Decimal
}

// ItemView vista derivada de una referencia, recalculada en cada consulta.
type ItemView struct {
	Ref           entity.StockItemRef
	Entry         Entry
	Valid         bool // RawText es interpretable
	Changed       bool
	OrderQuantity decimal.Decimal
}

// Summary contadores agregados para las insignias de la lista.
type Summary struct {
	Total      int
	Changed    int
	ToOrder    int // conteo bajo el mínimo
	OutOfStock int // conteo en cero
}

// Config dependencias y parámetros de un Store.
type Config struct {
	ListID        string
	ListName      string
	RestaurantID  string // restaurante dueño de la lista
	AutosaveQuiet time.Duration
	Scratch       ScratchStore // opcional
	Gateway       StockGateway
	Clock         Clock // por defecto SystemClock
	Logger        zerolog.Logger
}

// Store borrador de una única lista y un único usuario.
// Es seguro para uso concurrente; CommitDraft y SubmitAndFinalize son de vuelo único
// y devuelven domain.ErrBusy si ya hay uno en curso.
type Store struct {
	mu sync.Mutex

	listID       string
	listName     string
	restaurantID string

	refs    []entity.StockItemRef
	index   map[string]int
	entries map[string]*Entry

	state     State
	edits     uint64 // cambios de DraftValue desde la creación
	finalized bool
	closed    bool

	scratch ScratchStore
	gateway StockGateway
	clock   Clock
	quiet   time.Duration
	timer   Timer
	timerID uint64

	log zerolog.Logger
}

// NewStore construye un Store vacío en estado LOADED. Llamar Seed antes de editar.
func NewStore(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.AutosaveQuiet <= 0 {
		cfg.AutosaveQuiet = DefaultAutosaveQuiet
	}
	return &Store{
		listID:       cfg.ListID,
		listName:     cfg.ListName,
		restaurantID: cfg.RestaurantID,
		index:        make(map[string]int),
		entries:      make(map[string]*Entry),
		state:        StateLoaded,
		scratch:      cfg.Scratch,
		gateway:      cfg.Gateway,
		clock:        cfg.Clock,
		quiet:        cfg.AutosaveQuiet,
		log:          cfg.Logger.With().Str("list_id", cfg.ListID).Logger(),
	}
}

// ListID identidad de la lista.
func (s *Store) ListID() string { return s.listID }

// ListName nombre de la lista.
func (s *Store) ListName() string { return s.listName }

// RestaurantID restaurante dueño de la lista.
func (s *Store) RestaurantID() string { return s.restaurantID }

// State estado global actual.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Seed inicializa los borradores. Los valores persistidos localmente tienen prioridad
// sobre CurrentQuantity (recupera trabajo no guardado); la línea base siempre es CurrentQuantity.
func (s *Store) Seed(refs []entity.StockItemRef, persisted map[string]decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAutosaveLocked()
	s.refs = append([]entity.StockItemRef(nil), refs...)
	s.index = make(map[string]int, len(refs))
	s.entries = make(map[string]*Entry, len(refs))
	for i, ref := range refs {
		s.index[ref.ID] = i
		v := ref.CurrentQuantity
		if p, ok := persisted[ref.ID]; ok && !p.IsNegative() {
			v = p
		}
		s.entries[ref.ID] = &Entry{
			DraftValue:    v,
			RawText:       quantity.Canonical(v),
			BaselineValue: ref.CurrentQuantity,
		}
	}
	s.state = StateLoaded
	s.finalized = false
	s.closed = false
}

// OnInput registra lo que el usuario escribe. RawText se guarda siempre; DraftValue solo
// cambia si el texto es interpretable. Un fallo de parseo no es un error.
func (s *Store) OnInput(refID, raw string) (ItemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.editableLocked(refID)
	if err != nil {
		return ItemView{}, err
	}
	e.RawText = raw
	if v, perr := quantity.Parse(raw); perr == nil {
		s.setDraftLocked(e, v)
	}
	s.scheduleAutosaveLocked()
	return s.viewLocked(refID), nil
}

// OnResolve se dispara al perder el foco o confirmar. Si el texto es válido, lo
// reemplaza por su forma canónica ("5+3" -> "8").
func (s *Store) OnResolve(refID, raw string) (ItemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.editableLocked(refID)
	if err != nil {
		return ItemView{}, err
	}
	e.RawText = raw
	if v, perr := quantity.Parse(raw); perr == nil {
		s.setDraftLocked(e, v)
		if canonical := quantity.Canonical(v); canonical != raw {
			e.RawText = canonical
		}
	}
	s.scheduleAutosaveLocked()
	return s.viewLocked(refID), nil
}

// Discard revierte una referencia a su línea base.
func (s *Store) Discard(refID string) (ItemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.editableLocked(refID)
	if err != nil {
		return ItemView{}, err
	}
	s.setDraftLocked(e, e.BaselineValue)
	e.RawText = quantity.Canonical(e.BaselineValue)
	s.scheduleAutosaveLocked()
	return s.viewLocked(refID), nil
}

// DiscardAll revierte todas las referencias a su línea base.
func (s *Store) DiscardAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return err
	}
	for _, ref := range s.refs {
		e := s.entries[ref.ID]
		s.setDraftLocked(e, e.BaselineValue)
		e.RawText = quantity.Canonical(e.BaselineValue)
	}
	s.scheduleAutosaveLocked()
	return nil
}

// IsChanged indica si el borrador difiere de la línea base.
func (s *Store) IsChanged(refID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[refID]
	return ok && !e.DraftValue.Equal(e.BaselineValue)
}

// Entry copia del estado de una referencia.
func (s *Store) Entry(refID string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[refID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Items vistas derivadas en el orden de la lista.
func (s *Store) Items() []ItemView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ItemView, 0, len(s.refs))
	for _, ref := range s.refs {
		out = append(out, s.viewLocked(ref.ID))
	}
	return out
}

// Summary contadores derivados; no se guardan como estado aparte.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{Total: len(s.refs)}
	for _, ref := range s.refs {
		v := s.viewLocked(ref.ID)
		if v.Changed {
			sum.Changed++
		}
		if v.OrderQuantity.IsPositive() {
			sum.ToOrder++
		}
		if v.Entry.DraftValue.IsZero() {
			sum.OutOfStock++
		}
	}
	return sum
}

// ScheduleAutosave reinicia el temporizador de guardado local. Solo el último dispara.
func (s *Store) ScheduleAutosave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleAutosaveLocked()
}

// Close cancela el guardado local pendiente (ej. al salir de la pantalla).
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAutosaveLocked()
	s.closed = true
}

// CommitDraft envía {refId -> borrador} al servicio de registros. Si tiene éxito, la línea
// base pasa a ser lo enviado y se borra el borrador local. Si falla, nada cambia y el
// error envuelve domain.ErrTransport: reintentar es seguro.
func (s *Store) CommitDraft(ctx context.Context) error {
	snap, updates, editsAt, err := s.begin(StateSaving)
	if err != nil {
		return err
	}
	if err := s.write(ctx, updates); err != nil {
		s.end(nil)
		return err
	}
	s.end(snap)
	s.afterCommit(ctx, editsAt)
	s.log.Info().Int("items", len(snap)).Msg("borrador confirmado")
	return nil
}

// SubmitAndFinalize confirma el borrador y luego finaliza la lista a nombre de actor. Si tiene éxito se
// borra el borrador local y el Store queda cerrado para edición; la navegación
// posterior es responsabilidad del llamador.
func (s *Store) SubmitAndFinalize(ctx context.Context, actor string) error {
	snap, updates, editsAt, err := s.begin(StateSubmitting)
	if err != nil {
		return err
	}
	if err := s.write(ctx, updates); err != nil {
		s.end(nil)
		return err
	}

	s.mu.Lock()
	s.advanceBaselineLocked(snap)
	s.mu.Unlock()

	if err := s.gateway.Finalize(ctx, s.listID, actor); err != nil {
		s.end(nil)
		s.afterCommit(ctx, editsAt)
		return fmt.Errorf("finalizar lista: %w: %w", domain.ErrTransport, err)
	}

	s.mu.Lock()
	s.state = StateLoaded
	s.finalized = true
	s.cancelAutosaveLocked()
	s.mu.Unlock()

	s.deleteScratch(ctx)
	s.log.Info().Int("items", len(snap)).Str("actor", actor).Msg("lista enviada")
	return nil
}

// begin pasa a un estado de vuelo y toma una instantánea de los borradores
// (como mapa y como carga de escritura en el orden de la lista).
func (s *Store) begin(st State) (map[string]decimal.Decimal, []repository.QuantityUpdate, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpenLocked(); err != nil {
		return nil, nil, 0, err
	}
	if s.state != StateLoaded {
		return nil, nil, 0, domain.ErrBusy
	}
	s.state = st
	snap := s.draftMapLocked()
	updates := make([]repository.QuantityUpdate, 0, len(s.refs))
	for _, ref := range s.refs {
		updates = append(updates, repository.QuantityUpdate{StockItemRefID: ref.ID, CurrentQuantity: snap[ref.ID]})
	}
	return snap, updates, s.edits, nil
}

func (s *Store) write(ctx context.Context, updates []repository.QuantityUpdate) error {
	if err := s.gateway.UpdateQuantities(ctx, s.listID, updates); err != nil {
		s.log.Error().Err(err).Msg("guardar cantidades")
		return fmt.Errorf("guardar cantidades: %w: %w", domain.ErrTransport, err)
	}
	return nil
}

// end vuelve a LOADED; si snap no es nil, la línea base avanza a lo confirmado.
// Las ediciones hechas durante el vuelo siguen marcadas como cambiadas.
func (s *Store) end(snap map[string]decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoaded
	if snap != nil {
		s.advanceBaselineLocked(snap)
	}
}

// afterCommit borra el borrador local si no hubo ediciones durante el vuelo;
// si las hubo, reprograma el guardado para que la copia local refleje lo último.
func (s *Store) afterCommit(ctx context.Context, editsAt uint64) {
	s.mu.Lock()
	dirty := s.edits != editsAt
	if dirty {
		s.scheduleAutosaveLocked()
	} else {
		s.cancelAutosaveLocked()
	}
	s.mu.Unlock()
	if !dirty {
		s.deleteScratch(ctx)
	}
}

func (s *Store) advanceBaselineLocked(snap map[string]decimal.Decimal) {
	for id, v := range snap {
		if e, ok := s.entries[id]; ok {
			e.BaselineValue = v
		}
	}
}

func (s *Store) deleteScratch(ctx context.Context) {
	if s.scratch == nil {
		return
	}
	if err := s.scratch.Delete(ctx, ScratchKey(s.listID)); err != nil {
		s.log.Warn().Err(err).Msg("borrar borrador local")
	}
}

func (s *Store) scheduleAutosaveLocked() {
	if s.scratch == nil || s.closed || s.finalized {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerID++
	id := s.timerID
	s.timer = s.clock.AfterFunc(s.quiet, func() { s.flushAutosave(id) })
}

func (s *Store) cancelAutosaveLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerID++
}

// flushAutosave escribe el borrador completo si id sigue siendo el temporizador vigente.
// Los errores de persistencia se registran y se omite el ciclo.
func (s *Store) flushAutosave(id uint64) {
	s.mu.Lock()
	if id != s.timerID || s.closed || s.finalized {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	snap := s.draftMapLocked()
	s.mu.Unlock()

	b, err := encodeDraft(snap)
	if err != nil {
		s.log.Warn().Err(err).Msg("serializar borrador local")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), scratchWriteTimeout)
	defer cancel()
	if err := s.scratch.Set(ctx, ScratchKey(s.listID), b); err != nil {
		s.log.Warn().Err(err).Msg("guardado local omitido")
		return
	}
	s.log.Debug().Int("items", len(snap)).Msg("borrador local guardado")
}

func (s *Store) draftMapLocked() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.entries))
	for id, e := range s.entries {
		out[id] = e.DraftValue
	}
	return out
}

func (s *Store) setDraftLocked(e *Entry, v decimal.Decimal) {
	if !e.DraftValue.Equal(v) {
		e.DraftValue = v
		s.edits++
	}
}

func (s *Store) checkOpenLocked() error {
	if s.closed || s.finalized {
		return fmt.Errorf("borrador cerrado: %w", domain.ErrConflict)
	}
	return nil
}

func (s *Store) editableLocked(refID string) (*Entry, error) {
	if err := s.checkOpenLocked(); err != nil {
		return nil, err
	}
	e, ok := s.entries[refID]
	if !ok {
		return nil, fmt.Errorf("referencia %s: %w", refID, domain.ErrNotFound)
	}
	return e, nil
}

func (s *Store) viewLocked(refID string) ItemView {
	ref := s.refs[s.index[refID]]
	e := s.entries[refID]
	_, perr := quantity.Parse(e.RawText)
	return ItemView{
		Ref:           ref,
		Entry:         *e,
		Valid:         perr == nil,
		Changed:       !e.DraftValue.Equal(e.BaselineValue),
		OrderQuantity: inventory.ComputeOrderQuantity(ref, e.DraftValue),
	}
}
