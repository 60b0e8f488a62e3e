package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

func sampleNotification(typ domain.NotificationType, date string) *domain.Notification {
	return &domain.Notification{
		ID:        "n-1",
		Type:      typ,
		Recipient: "dispo@example.org",
		ShiftID:   "s-1",
		Shift: domain.ShiftSnapshot{
			Date:         date,
			Start:        "06:00",
			End:          "14:00",
			Type:         "Frühdienst",
			WorkLocation: "Leitstelle Nord",
		},
	}
}

func TestRemovalEmail(t *testing.T) {
	content := RemovalEmail(sampleNotification(domain.NotificationRemoved, "2025-01-15"))

	assert.Equal(t, "Dienst-Zuweisung entfernt - 15.1.2025", content.Subject)
	assert.Contains(t, content.HTML, "<h2>Dienst-Zuweisung entfernt</h2>")
	assert.Contains(t, content.HTML, "15.1.2025")
	assert.Contains(t, content.HTML, "06:00 - 14:00 Uhr")
	assert.Contains(t, content.HTML, "Frühdienst")
	assert.Contains(t, content.HTML, "Leitstelle Nord")

	assert.NotContains(t, content.Text, "<")
	assert.Contains(t, content.Text, "Dienst-Zuweisung entfernt")
	assert.Contains(t, content.Text, "Ihre Zuweisung für den folgenden Dienst wurde entfernt:")
	assert.Contains(t, content.Text, "15.1.2025")
	assert.Contains(t, content.Text, "Leitstelle Nord")
}

func TestDigestEmail(t *testing.T) {
	batch := []*domain.Notification{
		sampleNotification(domain.NotificationAssigned, "2025-01-15"),
		sampleNotification(domain.NotificationAssigned, "2025-02-03"),
	}
	batch[1].Shift.Type = "Spätdienst"
	batch[1].Shift.Start = "14:00"
	batch[1].Shift.End = "22:00"

	content := DigestEmail("dispo@example.org", batch, "17:00")

	assert.Equal(t, "2 neue Dienst-Zuweisung(en) - Tagesübersicht 17:00 Uhr", content.Subject)
	assert.Contains(t, content.HTML, "Sie haben 2 neue Dienst-Zuweisung(en) erhalten.")
	assert.Contains(t, content.HTML, "17:00 Uhr")
	assert.Contains(t, content.HTML, "15.1.2025")
	assert.Contains(t, content.HTML, "3.2.2025")
	assert.Contains(t, content.HTML, "Frühdienst")
	assert.Contains(t, content.HTML, "Spätdienst")

	assert.NotContains(t, content.Text, "<")
	assert.Contains(t, content.Text, "15.1.2025")
	assert.Contains(t, content.Text, "Spätdienst")
}

func TestDigestEmailCountsOnlyAssignments(t *testing.T) {
	batch := []*domain.Notification{
		sampleNotification(domain.NotificationAssigned, "2025-01-15"),
		sampleNotification(domain.NotificationRemoved, "2025-01-16"),
	}

	content := DigestEmail("dispo@example.org", batch, "08:30")

	assert.Equal(t, "1 neue Dienst-Zuweisung(en) - Tagesübersicht 08:30 Uhr", content.Subject)
	assert.Contains(t, content.HTML, "15.1.2025")
	assert.NotContains(t, content.HTML, "16.1.2025")
}

func TestFormatDateDE(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-01-15", "15.1.2025"},
		{"2025-12-01", "1.12.2025"},
		{"2024-02-29", "29.2.2024"},
		{"not-a-date", "not-a-date"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDateDE(tt.in), "formatDateDE(%q)", tt.in)
	}
}

func TestHTMLToText(t *testing.T) {
	text := htmlToText("<p>Hallo &uuml;ber   Umlaute</p>\n<ul><li>eins</li></ul>")
	assert.Equal(t, "Hallo über Umlaute eins", text)
}
