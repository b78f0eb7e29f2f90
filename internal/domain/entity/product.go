package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario con sus tres contadores vivos.
// Stock solo cambia vía movimientos del ledger; ReservedQuantity e IncomingQuantity
// los ajusta el reconciliador a partir de las facturas.
type Product struct {
	ID               string
	CompanyID        string
	SKU              string // código único por empresa
	Name             string
	Stock            decimal.Decimal // existencias físicas
	ReservedQuantity decimal.Decimal // comprometido con despachos, aún no enviado
	IncomingQuantity decimal.Decimal // prometido por recepciones, aún no recibido
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Available devuelve Stock - ReservedQuantity. Puede ser negativo (sobreventa).
func (p *Product) Available() decimal.Decimal {
	return p.Stock.Sub(p.ReservedQuantity)
}

// Counters devuelve la foto actual de los contadores.
func (p *Product) Counters() *ProductCounters {
	return &ProductCounters{
		ProductID:        p.ID,
		Stock:            p.Stock,
		ReservedQuantity: p.ReservedQuantity,
		IncomingQuantity: p.IncomingQuantity,
	}
}

// ProductCounters valores de los contadores tras una actualización atómica.
type ProductCounters struct {
	ProductID        string
	Stock            decimal.Decimal
	ReservedQuantity decimal.Decimal
	IncomingQuantity decimal.Decimal
}

// Oversold indica si lo reservado supera las existencias.
func (c *ProductCounters) Oversold() bool {
	return c.ReservedQuantity.GreaterThan(c.Stock)
}
