package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

const refCodeLength = 6

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// formatTurkishDate renders t as "d MMMM yyyy" with Turkish month names.
func formatTurkishDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), turkishMonths[t.Month()-1], t.Year())
}

// ReferenceCode is the short traceable tag derived from an event id.
func ReferenceCode(eventID string) string {
	code := []rune(eventID)
	if len(code) > refCodeLength {
		code = code[:refCodeLength]
	}
	return "Ref ID: #" + strings.ToUpper(string(code))
}

// composeAssignmentMessage builds the notice sent to an assignee.
func composeAssignmentMessage(event domain.Event, departmentName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s tarihindeki \"%s\" kampanyası için görevlendirildiniz.\nAciliyet: %s",
		formatTurkishDate(event.Date), event.Title, event.Urgency.Label())
	if event.Description != nil && *event.Description != "" {
		b.WriteString("\n\nAçıklama:\n")
		b.WriteString(*event.Description)
	}
	if departmentName != "" {
		b.WriteString("\n\nTalep Eden Birim: ")
		b.WriteString(departmentName)
	}
	return b.String()
}

func fallbackSubject(title string) string {
	return "ACİL: Görev Ataması: " + title
}

func fallbackBody(assigneeName, message, ref string) string {
	return fmt.Sprintf("Sayın %s,\n\n%s\n\n----------------\n%s", assigneeName, message, ref)
}

func notificationMessage(assigneeName, title string) string {
	return fmt.Sprintf("%s kişisine \"%s\" görevi atandı.", assigneeName, title)
}

func auditMessage(title, assigneeName, eventID string) string {
	return fmt.Sprintf("%s kampanyası için %s kişiye görev ataması yapıldı (ID: %s)", title, assigneeName, eventID)
}
