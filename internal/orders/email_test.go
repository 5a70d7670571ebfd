package orders

import (
	"strings"
	"testing"
	"time"
)

var emailFixtureLines = []SummaryLine{
	{SKU: "RC-001", Name: "Whole Milk", Unit: "crate", Qty: 3},
	{SKU: "RC-014", Name: "Espresso Beans", Unit: "bag", Qty: 2},
}

func TestComposeEmail(t *testing.T) {
	today := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	subject, body := ComposeEmail(emailFixtureLines, today)

	if subject != "Redchurch Cafe Weekly Order – September 1" {
		t.Fatalf("subject = %q", subject)
	}

	if !strings.Contains(body, "3 crate(s) – [RC-001] – Whole Milk") {
		t.Fatalf("body missing first line:\n%s", body)
	}
	if !strings.Contains(body, "2 bag(s) – [RC-014] – Espresso Beans") {
		t.Fatalf("body missing second line:\n%s", body)
	}
	if !strings.Contains(body, "week of September 1.") {
		t.Fatalf("body missing week reference:\n%s", body)
	}
	if !strings.Contains(body, "\r\n") {
		t.Fatal("body must use CRLF line endings")
	}
	if !strings.HasSuffix(body, "68 King Street E, Hamilton ON") {
		t.Fatalf("body missing signature:\n%s", body)
	}
}

func TestComposeEmailEmptyOrder(t *testing.T) {
	today := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	_, body := ComposeEmail(nil, today)

	if !strings.Contains(body, "Hello,") || !strings.Contains(body, "Thank you,") {
		t.Fatalf("empty order body lost its framing:\n%s", body)
	}
}

func TestMailURLsEscapeSpacesAsPercent20(t *testing.T) {
	subject, body := ComposeEmail(emailFixtureLines, time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC))

	for name, u := range map[string]string{
		"gmail":  GmailURL(subject, body),
		"mailto": MailtoURL(subject, body),
	} {
		if strings.Contains(u, "+") {
			t.Fatalf("%s URL must not encode spaces as '+': %s", name, u)
		}
		if strings.Contains(u, " ") {
			t.Fatalf("%s URL contains a raw space: %s", name, u)
		}
	}

	gmail := GmailURL(subject, body)
	if !strings.HasPrefix(gmail, "https://mail.google.com/mail/?view=cm&fs=1&tf=1&su=") {
		t.Fatalf("gmail URL prefix wrong: %s", gmail)
	}
	mailto := MailtoURL(subject, body)
	if !strings.HasPrefix(mailto, "mailto:?subject=") {
		t.Fatalf("mailto URL prefix wrong: %s", mailto)
	}
}
