package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Joan074/SellPoint/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateTicketPDF renders a thermal-style (80mm) ticket for a sale and
// writes it under dir. Returns the absolute path of the generated file.
func GenerateTicketPDF(venta *model.Venta, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create output dir: %w", err)
	}

	// 80mm wide page, height grows with the number of lines
	height := 120.0 + float64(len(venta.Items))*6.0
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(4, 6, 4)
	pdf.AddPage()

	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(72, 6, "SellPoint", "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	if venta.NumeroTicket != nil {
		pdf.CellFormat(72, 4, "Ticket: "+*venta.NumeroTicket, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(72, 4, venta.Fecha.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	if venta.Empleado != nil {
		pdf.CellFormat(72, 4, "Atendido por: "+venta.Empleado.Nombre, "", 1, "C", false, 0, "")
	}
	if venta.Cliente != nil {
		pdf.CellFormat(72, 4, "Cliente: "+venta.Cliente.Nombre, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.CellFormat(72, 3, "------------------------------------", "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "B", 8)
	pdf.CellFormat(34, 4, "Producto", "", 0, "L", false, 0, "")
	pdf.CellFormat(10, 4, "Cant", "", 0, "R", false, 0, "")
	pdf.CellFormat(14, 4, "P.Unit", "", 0, "R", false, 0, "")
	pdf.CellFormat(14, 4, "Importe", "", 1, "R", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(72, 3, "------------------------------------", "", 1, "C", false, 0, "")

	for _, item := range venta.Items {
		nombre := fmt.Sprintf("producto %d", item.ProductoID)
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if len(nombre) > 20 {
			nombre = nombre[:20]
		}
		pdf.CellFormat(34, 4, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(10, 4, fmt.Sprintf("%d", item.Cantidad), "", 0, "R", false, 0, "")
		pdf.CellFormat(14, 4, item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(14, 4, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.CellFormat(72, 3, "------------------------------------", "", 1, "C", false, 0, "")
	pdf.CellFormat(48, 4, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(24, 4, venta.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(48, 4, "IVA:", "", 0, "R", false, 0, "")
	pdf.CellFormat(24, 4, venta.IVA.StringFixed(2), "", 1, "R", false, 0, "")
	if venta.Descuento.IsPositive() {
		pdf.CellFormat(48, 4, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(24, 4, "-"+venta.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(48, 6, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(24, 6, venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Courier", "", 8)
	pdf.Ln(2)
	pdf.CellFormat(72, 4, "Pago: "+venta.MetodoPago, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.CellFormat(72, 4, "Gracias por su compra", "", 1, "C", false, 0, "")

	name := fmt.Sprintf("venta_%d.pdf", venta.ID)
	if venta.NumeroTicket != nil {
		name = fmt.Sprintf("%s.pdf", *venta.NumeroTicket)
	}
	path := filepath.Join(dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", path, err)
	}
	return path, nil
}
