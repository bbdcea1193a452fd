package utils

import (
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil when host is empty; a nil *Mailer is a disabled mailer.
func NewMailer(host string, port int, user, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if !m.Enabled() {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

type ReceiptLine struct {
	ProductName string
	SKU         string
	Quantity    int64
}

// ShipmentReceiptBody renders the HTML receipt sent to a supplier.
func ShipmentReceiptBody(documentNo, supplier, warehouse string, date time.Time, lines []ReceiptLine) string {
	var rows strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td align=\"right\">%d</td></tr>",
			html.EscapeString(l.SKU), html.EscapeString(l.ProductName), l.Quantity)
	}
	return fmt.Sprintf(`
		<html>
			<body>
				<p>Dear %s,</p>
				<p>Shipment <b>%s</b> was received at warehouse <b>%s</b> on %s.</p>
				<table border="1" cellpadding="4" cellspacing="0">
					<tr><th>SKU</th><th>Product</th><th>Quantity</th></tr>
					%s
				</table>
			</body>
		</html>
	`, html.EscapeString(supplier), html.EscapeString(documentNo), html.EscapeString(warehouse),
		date.Format("2006-01-02"), rows.String())
}
