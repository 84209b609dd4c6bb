package payment

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"shiningstar/internal/app/ds"
)

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"cents": func(v int64) string { return fmt.Sprintf("$%.2f", float64(v)/100) },
	"date":  func(t time.Time) string { return t.Format("01/02/2006") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Invoice {{.Invoice.Number}}</title>
<style>
body { font-family: Arial, sans-serif; color: #333; padding: 20px; }
.invoice { max-width: 800px; margin: 0 auto; padding: 40px; }
.header { display: flex; justify-content: space-between; border-bottom: 3px solid #667eea; padding-bottom: 20px; }
.header h1 { color: #667eea; margin: 0; }
table { width: 100%; border-collapse: collapse; margin: 30px 0; }
th, td { padding: 10px; text-align: left; border-bottom: 1px solid #eee; }
.totals { width: 300px; margin-left: auto; }
.total-row { background: #667eea; color: white; font-weight: bold; }
</style>
</head>
<body>
<div class="invoice">
  <div class="header">
    <div>
      <h1>{{.Business.Name}}</h1>
      <p>{{.Business.Address}}</p>
      <p>{{.Business.Phone}} | {{.Business.Email}}</p>
    </div>
    <div>
      <h2>INVOICE</h2>
      <p>Invoice #: {{.Invoice.Number}}</p>
      <p>Date: {{date .Invoice.IssuedAt}}</p>
      <p>Due: {{date .Invoice.DueAt}}</p>
    </div>
  </div>
  <h3>Bill To</h3>
  <p>{{.Invoice.Customer.Name}}<br>{{.Invoice.Customer.Address}}<br>{{.Invoice.Customer.Phone}}<br>{{.Invoice.Customer.Email}}</p>
  <table>
    <thead><tr><th>Service</th><th>Description</th><th>Quantity</th><th>Rate</th><th>Total</th></tr></thead>
    <tbody>
    {{- range .Invoice.Lines}}
      <tr><td>{{.Name}}</td><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{money .Rate}}</td><td>{{money .Total}}</td></tr>
    {{- end}}
    {{- if gt .Invoice.Totals.TravelCost 0.0}}
      <tr><td>Travel</td><td>{{printf "%.1f" .Invoice.DistanceMiles}} miles from base</td><td>1</td><td>{{money .Invoice.Totals.TravelCost}}</td><td>{{money .Invoice.Totals.TravelCost}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  <table class="totals">
    <tr><td>Subtotal</td><td>{{money .Invoice.Totals.Subtotal}}</td></tr>
    <tr><td>Travel</td><td>{{money .Invoice.Totals.TravelCost}}</td></tr>
    {{- if gt .Invoice.Totals.Discounts 0.0}}
    <tr><td>Discounts</td><td>-{{money .Invoice.Totals.Discounts}}</td></tr>
    {{- end}}
    <tr><td>Tax (8%)</td><td>{{money .Invoice.Totals.Tax}}</td></tr>
    <tr class="total-row"><td>Total</td><td>{{money .Invoice.Totals.Total}}</td></tr>
  </table>
  <p>Payment {{.Payment.ID}} ({{.Payment.Status}}) {{cents .Payment.Amount}} {{.Payment.Currency}}</p>
  <p>Thank you for choosing {{.Business.Name}}!</p>
</div>
</body>
</html>
`))

// RenderInvoice формирует HTML страницу счета. Данные клиента экранирует html/template.
func RenderInvoice(inv ds.Invoice, business Business, payment ds.Payment) (string, error) {
	var buf bytes.Buffer
	err := invoiceTemplate.Execute(&buf, struct {
		Invoice  ds.Invoice
		Business Business
		Payment  ds.Payment
	}{inv, business, payment})
	if err != nil {
		return "", fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return buf.String(), nil
}
