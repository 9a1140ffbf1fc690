package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// UseCaseConfig parámetros de las sesiones de borrador.
type UseCaseConfig struct {
	AutosaveQuiet time.Duration
	CommitTimeout time.Duration
	Clock         Clock
}

// UseCase administra un Store por lista abierta. Cada Store tiene su propio
// temporizador, así que varias listas abiertas no interfieren entre sí.
type UseCase struct {
	lists   repository.StockListRepository
	scratch ScratchStore
	cfg     UseCaseConfig
	log     zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewUseCase construye el caso de uso de borradores.
func NewUseCase(lists repository.StockListRepository, scratch ScratchStore, cfg UseCaseConfig, log zerolog.Logger) *UseCase {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = 15 * time.Second
	}
	return &UseCase{
		lists:   lists,
		scratch: scratch,
		cfg:     cfg,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// Open carga la lista y siembra el borrador (recuperando el borrador local si existe).
// Si la lista ya está abierta devuelve el estado en memoria sin volver a sembrar.
// Una lista de otro restaurante se reporta como inexistente.
func (uc *UseCase) Open(ctx context.Context, restaurantID, listID string) (*dto.DraftResponse, error) {
	if listID == "" {
		return nil, domain.ErrInvalidInput
	}
	if s, err := uc.store(restaurantID, listID); err == nil {
		return toDraftResponse(s), nil
	}

	list, err := uc.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.RestaurantID != restaurantID {
		return nil, fmt.Errorf("lista %s: %w", listID, domain.ErrNotFound)
	}

	persisted, err := LoadPersisted(ctx, uc.scratch, listID)
	if err != nil {
		// Borrador local ilegible: se parte de lo confirmado en el servidor.
		uc.log.Warn().Err(err).Str("list_id", listID).Msg("borrador local ignorado")
		persisted = nil
	}

	s := NewStore(Config{
		ListID:        list.ID,
		ListName:      list.Name,
		RestaurantID:  list.RestaurantID,
		AutosaveQuiet: uc.cfg.AutosaveQuiet,
		Scratch:       uc.scratch,
		Gateway:       uc.lists,
		Clock:         uc.cfg.Clock,
		Logger:        uc.log,
	})
	s.Seed(list.Items, persisted)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if existing, ok := uc.stores[listID]; ok {
		// Otra petición la abrió mientras cargábamos.
		s.Close()
		if existing.RestaurantID() != restaurantID {
			return nil, fmt.Errorf("lista %s: %w", listID, domain.ErrNotFound)
		}
		return toDraftResponse(existing), nil
	}
	uc.stores[listID] = s
	uc.log.Info().Str("list_id", listID).Int("items", len(list.Items)).Bool("recovered", persisted != nil).Msg("borrador abierto")
	return toDraftResponse(s), nil
}

// Get devuelve la vista actual del borrador.
func (uc *UseCase) Get(restaurantID, listID string) (*dto.DraftResponse, error) {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(s), nil
}

// Input registra texto tecleado para una referencia.
func (uc *UseCase) Input(restaurantID, listID, refID, raw string) (*dto.DraftItemResponse, error) {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return nil, err
	}
	v, err := s.OnInput(refID, raw)
	if err != nil {
		return nil, err
	}
	out := toDraftItemResponse(v)
	return &out, nil
}

// Resolve confirma el texto de una referencia y lo colapsa a su forma canónica.
func (uc *UseCase) Resolve(restaurantID, listID, refID, raw string) (*dto.DraftItemResponse, error) {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return nil, err
	}
	v, err := s.OnResolve(refID, raw)
	if err != nil {
		return nil, err
	}
	out := toDraftItemResponse(v)
	return &out, nil
}

// Discard revierte una referencia a su línea base.
func (uc *UseCase) Discard(restaurantID, listID, refID string) (*dto.DraftItemResponse, error) {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return nil, err
	}
	v, err := s.Discard(refID)
	if err != nil {
		return nil, err
	}
	out := toDraftItemResponse(v)
	return &out, nil
}

// DiscardAll revierte la lista completa a su línea base.
func (uc *UseCase) DiscardAll(restaurantID, listID string) (*dto.DraftResponse, error) {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return nil, err
	}
	if err := s.DiscardAll(); err != nil {
		return nil, err
	}
	return toDraftResponse(s), nil
}

// Commit guarda las cantidades del borrador en el servicio de registros.
func (uc *UseCase) Commit(ctx context.Context, restaurantID, listID string) (*dto.DraftResponse, error) {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.CommitTimeout)
	defer cancel()
	if err := s.CommitDraft(ctx); err != nil {
		return nil, err
	}
	return toDraftResponse(s), nil
}

// Submit guarda y finaliza la lista a nombre de actor. Si tiene éxito, la sesión se cierra.
func (uc *UseCase) Submit(ctx context.Context, restaurantID, listID, actor string) error {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.CommitTimeout)
	defer cancel()
	if err := s.SubmitAndFinalize(ctx, actor); err != nil {
		return err
	}
	uc.remove(listID, s)
	return nil
}

// Close cancela el guardado local pendiente y libera la sesión.
// El borrador local ya escrito se conserva para recuperarlo en la próxima apertura.
func (uc *UseCase) Close(restaurantID, listID string) error {
	s, err := uc.store(restaurantID, listID)
	if err != nil {
		return err
	}
	s.Close()
	uc.remove(listID, s)
	return nil
}

// CloseAll cierra todas las sesiones (apagado del servidor).
func (uc *UseCase) CloseAll() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for id, s := range uc.stores {
		s.Close()
		delete(uc.stores, id)
	}
}

// store devuelve la sesión abierta de la lista si pertenece al restaurante.
func (uc *UseCase) store(restaurantID, listID string) (*Store, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.stores[listID]
	if !ok || s.RestaurantID() != restaurantID {
		return nil, fmt.Errorf("borrador de la lista %s no abierto: %w", listID, domain.ErrNotFound)
	}
	return s, nil
}

func (uc *UseCase) remove(listID string, s *Store) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if cur, ok := uc.stores[listID]; ok && cur == s {
		delete(uc.stores, listID)
	}
}

func toDraftResponse(s *Store) *dto.DraftResponse {
	items := s.Items()
	sum := s.Summary()
	out := &dto.DraftResponse{
		ListID:   s.ListID(),
		ListName: s.ListName(),
		State:    string(s.State()),
		Summary: dto.DraftSummaryResponse{
			Total:      sum.Total,
			Changed:    sum.Changed,
			ToOrder:    sum.ToOrder,
			OutOfStock: sum.OutOfStock,
		},
		Items: make([]dto.DraftItemResponse, 0, len(items)),
	}
	for _, v := range items {
		out.Items = append(out.Items, toDraftItemResponse(v))
	}
	return out
}

func toDraftItemResponse(v ItemView) dto.DraftItemResponse {
	return dto.DraftItemResponse{
		StockItemRefID:       v.Ref.ID,
		CatalogItemID:        v.Ref.CatalogItem.ID,
		Name:                 v.Ref.CatalogItem.Name,
		Unit:                 v.Ref.CatalogItem.Unit,
		MinimumQuantity:      v.Ref.MinimumQuantity,
		UsesFixedRestockUnit: v.Ref.UsesFixedRestockUnit,
		FixedRestockUnitSize: v.Ref.FixedRestockUnitSize,
		RawText:              v.Entry.RawText,
		DraftValue:           v.Entry.DraftValue,
		BaselineValue:        v.Entry.BaselineValue,
		Valid:                v.Valid,
		Changed:              v.Changed,
		OrderQuantity:        v.OrderQuantity,
	}
}
