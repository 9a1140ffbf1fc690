package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

const draftPath = "/api/stock-lists/list-1/draft"

func TestDraftHandler_FlujoCompleto(t *testing.T) {
	env := newTestEnv(t)
	auth := bearer(t, "cocinero", "Ana")

	resp := env.do(t, http.MethodPost, draftPath, auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	opened := decode[dto.DraftResponse](t, resp)
	assert.Equal(t, "Cocina", opened.ListName)
	assert.Equal(t, "LOADED", opened.State)
	require.Len(t, opened.Items, 2)
	assert.Equal(t, 0, opened.Summary.Changed)

	resp = env.do(t, http.MethodPost, draftPath+"/items/r1/resolve", auth, dto.DraftInputRequest{RawText: "10-4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode[dto.DraftItemResponse](t, resp)
	assert.Equal(t, "6", item.RawText)
	assert.True(t, item.Valid)
	assert.True(t, item.Changed)
	assert.Equal(t, "6", item.DraftValue.String())
	assert.Equal(t, "4", item.OrderQuantity.String())

	resp = env.do(t, http.MethodPost, draftPath+"/commit", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	committed := decode[dto.DraftResponse](t, resp)
	assert.Equal(t, 0, committed.Summary.Changed)

	list, err := env.records.GetByID(context.Background(), "list-1")
	require.NoError(t, err)
	assert.Equal(t, "6", list.Items[0].CurrentQuantity.String())

	resp = env.do(t, http.MethodPost, draftPath+"/submit", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// La sesión se cierra al enviar.
	resp = env.do(t, http.MethodGet, draftPath, auth, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	pending, err := env.records.ListByStatus(context.Background(), testRestaurantID, entity.SubmissionStatusPending, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Ana", pending[0].SubmittedByName)
	require.Len(t, pending[0].Lines, 1)
	assert.Equal(t, "tomate", pending[0].Lines[0].CatalogItemID)
	assert.Equal(t, "4", pending[0].Lines[0].RequestedQuantity.String())
}

func TestDraftHandler_TextoInvalidoNoCambiaBorrador(t *testing.T) {
	env := newTestEnv(t)
	auth := bearer(t, "cocinero", "Ana")
	env.do(t, http.MethodPost, draftPath, auth, nil).Body.Close()

	resp := env.do(t, http.MethodPut, draftPath+"/items/r2", auth, dto.DraftInputRequest{RawText: "3+"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode[dto.DraftItemResponse](t, resp)
	assert.False(t, item.Valid)
	assert.False(t, item.Changed)
	assert.Equal(t, "3+", item.RawText)
	assert.Equal(t, "3", item.DraftValue.String())
}

func TestDraftHandler_DescartarCambios(t *testing.T) {
	env := newTestEnv(t)
	auth := bearer(t, "cocinero", "Ana")
	env.do(t, http.MethodPost, draftPath, auth, nil).Body.Close()
	env.do(t, http.MethodPut, draftPath+"/items/r1", auth, dto.DraftInputRequest{RawText: "1"}).Body.Close()
	env.do(t, http.MethodPut, draftPath+"/items/r2", auth, dto.DraftInputRequest{RawText: "0"}).Body.Close()

	resp := env.do(t, http.MethodDelete, draftPath+"/items/r1", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode[dto.DraftItemResponse](t, resp)
	assert.False(t, item.Changed)
	assert.Equal(t, "10", item.DraftValue.String())

	resp = env.do(t, http.MethodPost, draftPath+"/discard", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decode[dto.DraftResponse](t, resp)
	assert.Equal(t, 0, all.Summary.Changed)
}

func TestDraftHandler_Errores(t *testing.T) {
	env := newTestEnv(t)
	auth := bearer(t, "cocinero", "Ana")

	t.Run("lista inexistente", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/stock-lists/nope/draft", auth, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("sesión no abierta", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, draftPath+"/commit", auth, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("referencia inexistente", func(t *testing.T) {
		env.do(t, http.MethodPost, draftPath, auth, nil).Body.Close()
		resp := env.do(t, http.MethodPut, draftPath+"/items/zz", auth, dto.DraftInputRequest{RawText: "1"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("cuerpo inválido", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, draftPath+"/items/r1", auth, "no es un objeto")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "INVALID_BODY", body.Code)
	})

	t.Run("sin token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, draftPath, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestDraftHandler_CerrarSesion(t *testing.T) {
	env := newTestEnv(t)
	auth := bearer(t, "cocinero", "Ana")
	env.do(t, http.MethodPost, draftPath, auth, nil).Body.Close()

	resp := env.do(t, http.MethodDelete, draftPath, auth, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, draftPath, auth, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestInventoryHandler_Reposicion(t *testing.T) {
	env := newTestEnv(t)
	auth := bearer(t, "cocinero", "Ana")

	// Sin faltantes: tomate en 10 (mínimo 10) y sal en 3 (mínimo 2).
	resp := env.do(t, http.MethodGet, "/api/stock-lists/list-1/replenishment", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ReplenishmentListResponse](t, resp)
	assert.Empty(t, out.Items)

	// Tras confirmar un conteo bajo el mínimo aparece en la lista.
	env.do(t, http.MethodPost, draftPath, auth, nil).Body.Close()
	env.do(t, http.MethodPut, draftPath+"/items/r1", auth, dto.DraftInputRequest{RawText: "7"}).Body.Close()
	env.do(t, http.MethodPost, draftPath+"/commit", auth, nil).Body.Close()

	resp = env.do(t, http.MethodGet, "/api/stock-lists/list-1/replenishment", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.ReplenishmentListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Tomate", out.Items[0].Name)
	assert.Equal(t, "3", out.Items[0].OrderQuantity.String())
	assert.Equal(t, 1, out.Items[0].Priority)

	resp = env.do(t, http.MethodGet, "/api/stock-lists/nope/replenishment", auth, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDraftHandler_EnviaOtroUsuario(t *testing.T) {
	env := newTestEnv(t)
	ana := bearer(t, "cocinero", "Ana")
	luis := bearer(t, "cocinero", "Luis")

	env.do(t, http.MethodPost, draftPath, ana, nil).Body.Close()
	env.do(t, http.MethodPut, draftPath+"/items/r1", ana, dto.DraftInputRequest{RawText: "8"}).Body.Close()

	// Luis retoma la misma lista y la envía: la solicitud queda a su nombre.
	resp := env.do(t, http.MethodPost, draftPath, luis, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, draftPath+"/submit", luis, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	pending, err := env.records.ListByStatus(context.Background(), testRestaurantID, entity.SubmissionStatusPending, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Luis", pending[0].SubmittedByName)
}

func TestAislamientoPorRestaurante(t *testing.T) {
	env := newTestEnv(t)
	ajeno := bearerFor(t, "admin", "Eva", otherRestaurant)

	t.Run("lista de otro restaurante", func(t *testing.T) {
		for _, r := range []struct{ method, path string }{
			{http.MethodPost, draftPath},
			{http.MethodPost, draftPath + "/commit"},
			{http.MethodPost, draftPath + "/submit"},
			{http.MethodGet, "/api/stock-lists/list-1/replenishment"},
		} {
			resp := env.do(t, r.method, r.path, ajeno, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, r.path)
			resp.Body.Close()
		}
	})

	t.Run("sesión abierta por el dueño", func(t *testing.T) {
		own := bearer(t, "cocinero", "Ana")
		env.do(t, http.MethodPost, draftPath, own, nil).Body.Close()

		resp := env.do(t, http.MethodPut, draftPath+"/items/r1", ajeno, dto.DraftInputRequest{RawText: "0"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
		resp = env.do(t, http.MethodPost, draftPath+"/submit", ajeno, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, draftPath, own, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		out := decode[dto.DraftResponse](t, resp)
		assert.Equal(t, 0, out.Summary.Changed)
	})

	t.Run("no se crean solicitudes", func(t *testing.T) {
		pending, err := env.records.ListByStatus(context.Background(), otherRestaurant, entity.SubmissionStatusPending, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, pending)
		pending, err = env.records.ListByStatus(context.Background(), testRestaurantID, entity.SubmissionStatusPending, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("solicitudes de otro restaurante", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/submissions", ajeno, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decode[dto.SubmissionListResponse](t, resp)
		require.Len(t, list.Items, 1)
		assert.Equal(t, subAjena, list.Items[0].ID)

		resp = env.do(t, http.MethodPost, "/api/consolidations/preview", ajeno,
			dto.ConsolidationRequest{SubmissionIDs: []string{subCocina, subBarra}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		preview := decode[dto.ConsolidationPreviewResponse](t, resp)
		assert.Empty(t, preview.Lines)
	})

	t.Run("token sin restaurante", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, draftPath, bearerFor(t, "admin", "Eva", ""), nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "UNAUTHORIZED", body.Code)
	})
}
