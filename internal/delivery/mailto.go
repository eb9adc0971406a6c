package delivery

import (
	"net/url"
	"strings"
)

// BuildMailtoURI returns a compose-a-message deep link with a high priority hint.
func BuildMailtoURI(recipient, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(url.PathEscape(recipient))
	b.WriteString("?subject=")
	b.WriteString(encodeComponent(subject))
	b.WriteString("&body=")
	b.WriteString(encodeComponent(body))
	b.WriteString("&importance=High&X-Priority=1")
	return b.String()
}

// encodeComponent percent-encodes s with %20 for spaces, as mail clients expect.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
