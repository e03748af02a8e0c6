package documents

const budgetTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Orçamento {{seqnum .Budget.Number}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 2rem; color: #1c1c1c; }
h1 { font-size: 1.4rem; margin-bottom: 0; }
.meta { color: #555; margin-bottom: 1.5rem; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f2f2f2; }
.total { font-weight: bold; text-align: right; margin-top: 1rem; }
.footer { margin-top: 2rem; color: #777; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>{{.Shop.CompanyName}}</h1>
<p class="meta">Orçamento Nº {{seqnum .Budget.Number}} &mdash; emitido em {{.IssuedDate}}</p>
<p>
Cliente: {{.Budget.ClientName}}<br>
{{if .Budget.Address}}Endereço: {{.Budget.Address}}<br>{{end}}
{{if .Budget.DeliveryType}}Entrega: {{.Budget.DeliveryType}}<br>{{end}}
{{if .Budget.SaleType}}Tipo de venda: {{.Budget.SaleType}}<br>{{end}}
{{if .Budget.ProductionDeadline}}Prazo de produção: {{.Budget.ProductionDeadline}}{{end}}
</p>
<table>
<tr><th>Produto</th><th>Qtd</th><th>Valor unitário</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{money .UnitPrice}}</td><td>{{money .LineTotal}}</td></tr>
{{end}}</table>
<p class="total">Total: {{money .Budget.TotalAmount}}</p>
{{if .Budget.Notes}}<p>Observações: {{.Budget.Notes}}</p>{{end}}
{{if .Shop.DocumentFooter}}<p class="footer">{{.Shop.DocumentFooter}}</p>{{end}}
</body>
</html>
`

const orderTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Pedido {{seqnum .Order.Number}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 2rem; color: #1c1c1c; }
h1 { font-size: 1.4rem; margin-bottom: 0; }
.meta { color: #555; margin-bottom: 1.5rem; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f2f2f2; }
.total { font-weight: bold; text-align: right; margin-top: 1rem; }
.status { margin-top: 1rem; }
.footer { margin-top: 2rem; color: #777; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>{{.Shop.CompanyName}}</h1>
<p class="meta">Pedido Nº {{seqnum .Order.Number}} &mdash; emitido em {{.IssuedDate}}</p>
<p>
{{if .Customer}}Cliente: {{.Customer}}<br>{{end}}
{{if .Order.DeliveryType}}Entrega: {{.Order.DeliveryType}}<br>{{end}}
{{if .Order.DeliveryDeadline}}Prazo de entrega: {{.Order.DeliveryDeadline}}<br>{{end}}
{{if .Order.PaymentMethod}}Forma de pagamento: {{.Order.PaymentMethod}}{{end}}
</p>
<table>
<tr><th>Produto</th><th>Qtd</th><th>Valor unitário</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{money .UnitPrice}}</td><td>{{money .LineTotal}}</td></tr>
{{end}}</table>
<p class="total">Total: {{money .Order.TotalAmount}}</p>
<p class="status">
Pagamento: {{.Order.PaymentStatus}}<br>
Produção: {{.Order.DeliveryStatus}}
</p>
{{if .Order.Notes}}<p>Observações: {{.Order.Notes}}</p>{{end}}
{{if .Shop.DocumentFooter}}<p class="footer">{{.Shop.DocumentFooter}}</p>{{end}}
</body>
</html>
`
