package draft

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
)

// ScratchKey clave del borrador local de una lista.
func ScratchKey(listID string) string {
	return "draft-stock-list-" + listID
}

// encodeDraft serializa {refId: número} como JSON con números sin comillas.
func encodeDraft(values map[string]decimal.Decimal) ([]byte, error) {
	out := make(map[string]json.Number, len(values))
	for id, v := range values {
		out[id] = json.Number(v.String())
	}
	return json.Marshal(out)
}

func decodeDraft(b []byte) (map[string]decimal.Decimal, error) {
	var values map[string]decimal.Decimal
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// LoadPersisted lee el borrador local de una lista. Devuelve nil, nil si no existe.
// Un valor corrupto se trata como ausente y se informa con ErrPersistence.
func LoadPersisted(ctx context.Context, scratch ScratchStore, listID string) (map[string]decimal.Decimal, error) {
	if scratch == nil {
		return nil, nil
	}
	b, ok, err := scratch.Get(ctx, ScratchKey(listID))
	if err != nil {
		return nil, fmt.Errorf("leer borrador local: %w: %w", domain.ErrPersistence, err)
	}
	if !ok {
		return nil, nil
	}
	values, err := decodeDraft(b)
	if err != nil {
		return nil, fmt.Errorf("decodificar borrador local: %w: %w", domain.ErrPersistence, err)
	}
	return values, nil
}
