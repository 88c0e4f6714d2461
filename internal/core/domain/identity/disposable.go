package identity

import "strings"

// disposableEmailDomains are throwaway mail providers blocked when a tenant
// enables disposable_email_blocking.
var disposableEmailDomains = map[string]bool{
	"mailinator.com":         true,
	"tempmail.com":           true,
	"throwaway.email":        true,
	"guerrillamail.com":      true,
	"sharklasers.com":        true,
	"guerrillamailblock.com": true,
	"grr.la":                 true,
	"yopmail.com":            true,
	"10minutemail.com":       true,
	"trashmail.com":          true,
	"fakeinbox.com":          true,
	"maildrop.cc":            true,
}

// DisposableEmailDomain returns the offending domain if the address belongs
// to a known throwaway provider.
func DisposableEmailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "", false
	}
	domain := strings.ToLower(email[at+1:])
	return domain, disposableEmailDomains[domain]
}
