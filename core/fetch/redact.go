package fetch

import (
	"net/url"
	"strings"
)

var secretParams = []string{"password", "token", "username"}

// Redact masks credentials in a URL so it can be logged.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.User != nil {
		u.User = url.User("***")
	}
	q := u.Query()
	changed := false
	for key := range q {
		for _, secret := range secretParams {
			if strings.EqualFold(key, secret) {
				q.Set(key, "***")
				changed = true
			}
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
