// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/config"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	StoreName     string
	Order         *order.Order
}

// GenerateInvoice generates a PDF invoice for a paid order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		StoreName:     s.config.App.Name,
		Order:         o,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from the invoice template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Invoice HTML template. Amounts are whole rupees.
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #222; }
        .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
        .store { font-size: 22px; font-weight: bold; }
        .meta { text-align: right; font-size: 12px; color: #555; }
        h2 { font-size: 14px; text-transform: uppercase; letter-spacing: 1px; color: #555; }
        .address { font-size: 13px; line-height: 1.5; }
        table { width: 100%; border-collapse: collapse; margin-top: 16px; }
        th { text-align: left; font-size: 12px; text-transform: uppercase; color: #555;
             border-bottom: 2px solid #222; padding: 8px 4px; }
        td { padding: 8px 4px; border-bottom: 1px solid #ddd; font-size: 13px; }
        .num { text-align: right; }
        .totals { width: 280px; margin-left: auto; margin-top: 16px; }
        .totals td { border: none; }
        .grand td { border-top: 2px solid #222; font-weight: bold; }
    </style>
</head>
<body>
    <div class="header">
        <div class="store">{{.StoreName}}</div>
        <div class="meta">
            Invoice {{.InvoiceNumber}}<br>
            Date: {{.InvoiceDate}}<br>
            Order: {{.Order.OrderNumber}}
        </div>
    </div>

    <h2>Ship To</h2>
    <div class="address">
        {{.Order.ShippingAddress.Name}}<br>
        {{.Order.ShippingAddress.AddressLine1}}<br>
        {{if .Order.ShippingAddress.AddressLine2}}{{.Order.ShippingAddress.AddressLine2}}<br>{{end}}
        {{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.Pincode}}<br>
        Phone: {{.Order.ShippingAddress.Phone}}
    </div>

    <table>
        <tr>
            <th>Item</th><th>SKU</th><th>Options</th>
            <th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th>
        </tr>
        {{range .Order.Items}}
        <tr>
            <td>{{.Name}}</td>
            <td>{{.SKU}}</td>
            <td>{{if .Size}}{{.Size}}{{end}}{{if .Color}} {{.Color}}{{end}}</td>
            <td class="num">{{.Quantity}}</td>
            <td class="num">₹{{.Price}}</td>
            <td class="num">₹{{.Total}}</td>
        </tr>
        {{end}}
    </table>

    <table class="totals">
        <tr><td>Subtotal</td><td class="num">₹{{.Order.Subtotal}}</td></tr>
        <tr><td>Shipping</td><td class="num">₹{{.Order.ShippingCost}}</td></tr>
        <tr><td>Tax</td><td class="num">₹{{.Order.TaxAmount}}</td></tr>
        <tr class="grand"><td>Total</td><td class="num">₹{{.Order.TotalAmount}}</td></tr>
    </table>
</body>
</html>
`
