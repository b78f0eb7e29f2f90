package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestPrintReports_CountsDrift(t *testing.T) {
	var buf bytes.Buffer
	n := printReports(&buf, []*inventory.ReconcileReport{
		{ProductID: "p-1", RecordedStock: decimal.NewFromInt(5), ReplayedStock: decimal.NewFromInt(5), Drift: decimal.Zero, Movements: 2},
		{ProductID: "p-2", RecordedStock: decimal.NewFromInt(9), ReplayedStock: decimal.NewFromInt(7), Drift: decimal.NewFromInt(2), Movements: 3, Repaired: true},
	})
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "p-2")
	assert.Contains(t, buf.String(), "true")
}

func TestPrintMovements_SignsDecrease(t *testing.T) {
	var buf bytes.Buffer
	printMovements(&buf, []*entity.StockMovement{{
		Sequence:      2,
		Type:          entity.MovementTypeOUT,
		Quantity:      decimal.NewFromInt(3),
		Direction:     entity.DirectionDecrease,
		PreviousStock: decimal.NewFromInt(10),
		NewStock:      decimal.NewFromInt(7),
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	assert.Contains(t, buf.String(), "-3")
	assert.Contains(t, buf.String(), "2026-01-02 03:04:05")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["reconcile"])
	assert.True(t, names["movements"])
}
