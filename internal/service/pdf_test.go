package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/types"
)

func TestRenderShoppingListPDF(t *testing.T) {
	items := []types.ShoppingItem{
		{Name: "egg", MeasurementUnit: "pc", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
	}

	pdf, err := RenderShoppingListPDF(items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output must be a PDF document")
}

func TestRenderShoppingListPDFEmpty(t *testing.T) {
	pdf, err := RenderShoppingListPDF(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "empty list still renders a valid document")
}
