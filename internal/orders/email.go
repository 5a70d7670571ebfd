package orders

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type SummaryLine struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	Qty  int    `json:"qty"`
}

// ComposeEmail builds the weekly order email for the supplier. The body uses
// CRLF line endings so it survives mailto handling in every client.
func ComposeEmail(lines []SummaryLine, today time.Time) (subject, body string) {
	day := today.Format("January 2")
	subject = fmt.Sprintf("Redchurch Cafe Weekly Order – %s", day)

	itemLines := make([]string, 0, len(lines))
	for _, l := range lines {
		itemLines = append(itemLines, fmt.Sprintf("%d %s(s) – [%s] – %s", l.Qty, l.Unit, l.SKU, l.Name))
	}

	const nl = "\r\n"
	body = "Hello," + nl + nl +
		"Here is the following order for Redchurch Cafe for the week of " + day + "." + nl + nl +
		strings.Join(itemLines, nl) +
		nl + nl +
		"Thank you," + nl +
		"Stefanie Forget" + nl +
		"Manager" + nl +
		"Redchurch Cafe" + nl +
		"68 King Street E, Hamilton ON"

	return subject, body
}

// GmailURL and MailtoURL percent-encode with %20 for spaces; '+' is not a
// space inside a mailto body.
func GmailURL(subject, body string) string {
	return "https://mail.google.com/mail/?view=cm&fs=1&tf=1" +
		"&su=" + escape(subject) +
		"&body=" + escape(body)
}

func MailtoURL(subject, body string) string {
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
