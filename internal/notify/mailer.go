// AngelaMos | 2026
// mailer.go

package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/order"
)

type phrases struct {
	WelcomeSubject string
	WelcomeBody    string
	OrderSubject   string
	OrderBody      string
	Total          string
	Open           string
}

var catalog = map[i18n.Language]phrases{
	i18n.English: {
		WelcomeSubject: "Welcome to RossoVerde",
		WelcomeBody:    "Your supporter account is ready. Pick a membership tier to join the family.",
		OrderSubject:   "Order confirmation %s",
		OrderBody:      "Thank you, we received your order.",
		Total:          "Total",
		Open:           "Open your member area",
	},
	i18n.French: {
		WelcomeSubject: "Bienvenue chez RossoVerde",
		WelcomeBody:    "Votre compte supporter est prêt. Choisissez une formule d'adhésion pour rejoindre la famille.",
		OrderSubject:   "Confirmation de commande %s",
		OrderBody:      "Merci, nous avons bien reçu votre commande.",
		Total:          "Total",
		Open:           "Accéder à l'espace membre",
	},
	i18n.Arabic: {
		WelcomeSubject: "مرحبا بك في روسوفيردي",
		WelcomeBody:    "حساب المشجع الخاص بك جاهز. اختر فئة العضوية للانضمام إلى العائلة.",
		OrderSubject:   "تأكيد الطلب %s",
		OrderBody:      "شكرا لك، لقد استلمنا طلبك.",
		Total:          "المجموع",
		Open:           "افتح فضاء الأعضاء",
	},
}

var layout = template.Must(template.New("email").Parse(
	`<!doctype html><html lang="{{.Lang}}" dir="{{.Dir}}"><body>` +
		`<p>{{.Body}}</p>` +
		`{{if .Lines}}<table>{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Amount}}</td></tr>{{end}}` +
		`<tr><td colspan="2">{{.TotalLabel}}</td><td>{{.Total}}</td></tr></table>{{end}}` +
		`{{if .Link}}<p><a href="{{.Link}}">{{.LinkLabel}}</a></p>{{end}}` +
		`</body></html>`,
))

type line struct {
	Name     string
	Quantity int
	Amount   string
}

type view struct {
	Lang       i18n.Language
	Dir        i18n.Direction
	Body       string
	Lines      []line
	TotalLabel string
	Total      string
	Link       string
	LinkLabel  string
}

// Mailer renders localized messages and hands them to a Sender. It
// satisfies both auth.WelcomeMailer and order.ConfirmationMailer.
type Mailer struct {
	sender  Sender
	siteURL string
}

func NewMailer(sender Sender, siteURL string) *Mailer {
	return &Mailer{sender: sender, siteURL: strings.TrimRight(siteURL, "/")}
}

// FromConfig picks the Resend sender when delivery is enabled.
func FromConfig(cfg config.EmailConfig) *Mailer {
	if !cfg.Enabled {
		return NewMailer(LogSender{}, cfg.SiteURL)
	}
	return NewMailer(NewResendSender(cfg.ResendKey, cfg.FromAddress), cfg.SiteURL)
}

func (m *Mailer) SendWelcome(ctx context.Context, email string, lang i18n.Language) error {
	c := phrasesFor(lang)

	html, err := render(view{
		Lang:      lang,
		Dir:       lang.Dir(),
		Body:      c.WelcomeBody,
		Link:      m.link("/member"),
		LinkLabel: c.Open,
	})
	if err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}

	return m.sender.Send(ctx, Message{
		To:      email,
		Subject: c.WelcomeSubject,
		HTML:    html,
	})
}

func (m *Mailer) SendOrderConfirmation(
	ctx context.Context,
	to string,
	lang i18n.Language,
	o *order.Order,
) error {
	c := phrasesFor(lang)

	lines := make([]line, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, line{
			Name:     it.Name(lang),
			Quantity: it.Quantity,
			Amount:   money(it.TotalPrice, o.Currency),
		})
	}

	html, err := render(view{
		Lang:       lang,
		Dir:        lang.Dir(),
		Body:       c.OrderBody,
		Lines:      lines,
		TotalLabel: c.Total,
		Total:      money(o.TotalAmount, o.Currency),
		Link:       m.link("/member"),
		LinkLabel:  c.Open,
	})
	if err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}

	return m.sender.Send(ctx, Message{
		To:      to,
		Subject: fmt.Sprintf(c.OrderSubject, shortID(o.ID)),
		HTML:    html,
	})
}

func (m *Mailer) link(path string) string {
	if m.siteURL == "" {
		return ""
	}
	return m.siteURL + path
}

func phrasesFor(lang i18n.Language) phrases {
	if c, ok := catalog[lang]; ok {
		return c
	}
	return catalog[i18n.English]
}

func render(v view) (string, error) {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
