package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// EmailContent is a rendered email: subject plus content-equivalent
// HTML and plain-text bodies.
type EmailContent struct {
	Subject string
	HTML    string
	Text    string
}

// RemovalEmail renders the immediate notice sent when a shift
// assignment is taken away from a dispatcher.
func RemovalEmail(n *domain.Notification) EmailContent {
	date := formatDateDE(n.Shift.Date)

	var b strings.Builder
	b.WriteString("<h2>Dienst-Zuweisung entfernt</h2>")
	b.WriteString("<p>Ihre Zuweisung f&uuml;r den folgenden Dienst wurde entfernt:</p>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li><strong>Datum:</strong> %s</li>", date)
	fmt.Fprintf(&b, "<li><strong>Zeit:</strong> %s - %s Uhr</li>", n.Shift.Start, n.Shift.End)
	fmt.Fprintf(&b, "<li><strong>Dienstart:</strong> %s</li>", html.EscapeString(n.Shift.Type))
	fmt.Fprintf(&b, "<li><strong>Arbeitsort:</strong> %s</li>", html.EscapeString(n.Shift.WorkLocation))
	b.WriteString("</ul>")
	b.WriteString("<p>Bei Fragen wenden Sie sich bitte an Ihre Dienstplanung.</p>")

	htmlBody := b.String()
	return EmailContent{
		Subject: fmt.Sprintf("Dienst-Zuweisung entfernt - %s", date),
		HTML:    htmlBody,
		Text:    htmlToText(htmlBody),
	}
}

// DigestEmail renders the once-daily summary for one recipient. Only
// assigned-type notifications are listed and counted; the configured
// digest time appears in both subject and body.
func DigestEmail(recipient string, batch []*domain.Notification, digestTime string) EmailContent {
	var assigned []*domain.Notification
	for _, n := range batch {
		if n.Type == domain.NotificationAssigned {
			assigned = append(assigned, n)
		}
	}

	var b strings.Builder
	b.WriteString("<h2>Neue Dienst-Zuweisungen</h2>")
	fmt.Fprintf(&b, "<p>Sie haben %d neue Dienst-Zuweisung(en) erhalten. Diese &Uuml;bersicht wird t&auml;glich um %s Uhr versendet.</p>",
		len(assigned), digestTime)
	b.WriteString("<ul>")
	for _, n := range assigned {
		fmt.Fprintf(&b, "<li><strong>%s</strong>: %s - %s Uhr, %s, %s</li>",
			formatDateDE(n.Shift.Date),
			n.Shift.Start,
			n.Shift.End,
			html.EscapeString(n.Shift.Type),
			html.EscapeString(n.Shift.WorkLocation),
		)
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Bei Fragen wenden Sie sich bitte an Ihre Dienstplanung.</p>")

	htmlBody := b.String()
	return EmailContent{
		Subject: fmt.Sprintf("%d neue Dienst-Zuweisung(en) - Tagesübersicht %s Uhr", len(assigned), digestTime),
		HTML:    htmlBody,
		Text:    htmlToText(htmlBody),
	}
}

// formatDateDE renders an ISO date the de-DE way: non-zero-padded
// day.month.year. Unparseable input passes through unchanged.
func formatDateDE(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// htmlToText strips markup and collapses whitespace so the plain-text
// body stays content-equivalent to the HTML rendering.
func htmlToText(htmlBody string) string {
	text := tagPattern.ReplaceAllString(htmlBody, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
