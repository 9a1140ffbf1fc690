package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appcons "github.com/jhoicas/Reposicion-api/internal/application/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/application/draft"
	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
	domcons "github.com/jhoicas/Reposicion-api/internal/domain/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Reposicion-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Reposicion-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Reposicion-api/pkg/jwt"
)

const (
	testJWTSecret    = "test-secret-key-for-unit-tests"
	testIssuer       = "reposicion-api-test"
	testUserID       = "00000000-0000-0000-0000-000000000001"
	testRestaurantID = "00000000-0000-0000-0000-000000000002"
	otherRestaurant  = "00000000-0000-0000-0000-000000000003"

	subCocina = "7d0f3a52-0000-4000-8000-000000000001"
	subBarra  = "7d0f3a52-0000-4000-8000-000000000002"
	subAjena  = "7d0f3a52-0000-4000-8000-000000000003"
)

// bearer genera el header Authorization para un usuario del restaurante de prueba.
func bearer(t *testing.T, role, name string) string {
	t.Helper()
	return bearerFor(t, role, name, testRestaurantID)
}

// bearerFor genera el header Authorization para un usuario de restaurantID.
func bearerFor(t *testing.T, role, name, restaurantID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{
		UserID:       testUserID,
		UserName:     name,
		RestaurantID: restaurantID,
		Role:         role,
	}, 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

type testEnv struct {
	app     *fiber.App
	records *memory.Records
	drafts  *draft.UseCase
}

// newTestEnv arma la API completa sobre almacenamiento en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	records := memory.NewRecords()
	records.PutList(entity.StockList{
		ID:           "list-1",
		RestaurantID: testRestaurantID,
		Name:         "Cocina",
		Items: []entity.StockItemRef{
			{ID: "r1", CatalogItem: entity.CatalogItem{ID: "tomate", Name: "Tomate", Unit: "kg"},
				MinimumQuantity: decimal.NewFromInt(10), CurrentQuantity: decimal.NewFromInt(10)},
			{ID: "r2", CatalogItem: entity.CatalogItem{ID: "sal", Name: "Sal", Unit: "kg"},
				MinimumQuantity: decimal.NewFromInt(2), CurrentQuantity: decimal.NewFromInt(3)},
		},
	})
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	records.PutSubmission(entity.Submission{
		ID: subCocina, RestaurantID: testRestaurantID, SourceListID: "list-1", SourceListName: "Cocina", SubmittedByName: "Ana",
		Status: entity.SubmissionStatusPartial, CreatedAt: now,
		Lines: []entity.SubmissionLine{
			{StockItemRefID: "r1", CatalogItemID: "tomate", CatalogItemName: "Tomate", Unit: "kg",
				RequestedQuantity: decimal.NewFromInt(3), LineStatus: entity.LineStatusApproved},
			{StockItemRefID: "r2", CatalogItemID: "sal", CatalogItemName: "Sal", Unit: "kg",
				RequestedQuantity: decimal.NewFromInt(1), LineStatus: entity.LineStatusRejected},
		},
	})
	records.PutSubmission(entity.Submission{
		ID: subBarra, RestaurantID: testRestaurantID, SourceListID: "list-2", SourceListName: "Barra", SubmittedByName: "Luis",
		Status: entity.SubmissionStatusApproved, CreatedAt: now.Add(time.Hour),
		Lines: []entity.SubmissionLine{
			{StockItemRefID: "b1", CatalogItemID: "tomate", CatalogItemName: "Tomate", Unit: "kg",
				RequestedQuantity: decimal.RequireFromString("2.5"), LineStatus: entity.LineStatusApproved},
		},
	})
	records.PutSubmission(entity.Submission{
		ID: subAjena, RestaurantID: otherRestaurant, SourceListID: "list-9", SourceListName: "Cocina", SubmittedByName: "Eva",
		Status: entity.SubmissionStatusApproved, CreatedAt: now.Add(2 * time.Hour),
		Lines: []entity.SubmissionLine{
			{StockItemRefID: "x1", CatalogItemID: "tomate", CatalogItemName: "Tomate", Unit: "kg",
				RequestedQuantity: decimal.NewFromInt(40), LineStatus: entity.LineStatusApproved},
		},
	})

	drafts := draft.NewUseCase(records, memory.NewScratchStore(), draft.UseCaseConfig{
		AutosaveQuiet: time.Hour, // los tests no dependen del guardado local
		CommitTimeout: 5 * time.Second,
	}, zerolog.Nop())
	t.Cleanup(drafts.CloseAll)

	formatter := domcons.NewFormatter("es")
	cons := appcons.NewUseCase(records, formatter, infrapdf.NewOrderPDFGenerator(formatter, "test"))

	app := apphttp.NewApp("reposicion-test", zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		DraftUC:         drafts,
		ConsolidationUC: cons,
		Replenishment:   inventory.NewReplenishmentUseCase(records),
		JWTSecret:       testJWTSecret,
		JWTIssuer:       testIssuer,
	})
	return &testEnv{app: app, records: records, drafts: drafts}
}

// do lanza una petición con cuerpo JSON opcional.
func (e *testEnv) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
