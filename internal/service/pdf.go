package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/platefeed/backend/internal/types"
)

// ShoppingListFilename is used for the Content-Disposition attachment name.
const ShoppingListFilename = "shopping_list.pdf"

// RenderShoppingListPDF renders the aggregated list as a one-page PDF with
// numbered lines in the form "{i}) {name} - {amount}{unit}". An empty list
// still yields a valid document with just the title.
func RenderShoppingListPDF(items []types.ShoppingItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Shopping list", false)
	pdf.AddPage()

	pdf.SetFont("Times", "B", 24)
	pdf.CellFormat(0, 14, "Shopping list", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "", 16)
	for i, item := range items {
		line := fmt.Sprintf("%d) %s - %d%s", i+1, item.Name, item.TotalAmount, item.MeasurementUnit)
		pdf.CellFormat(0, 9, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
