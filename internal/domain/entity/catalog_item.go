package entity

// CatalogItem identidad canónica de un insumo (global y estable).
// Es propiedad del catálogo externo; este servicio solo lo lee.
type CatalogItem struct {
	ID   string
	Name string
	Unit string // kg, un, caja, lt...
}
