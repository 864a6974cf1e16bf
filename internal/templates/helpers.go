package templates

import (
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

// field returns the i-th rendered field of c, or "" past the end.
func field(c domain.Card, i int) string {
	if i < len(c.Fields) {
		return c.Fields[i]
	}
	return ""
}

// key returns the i-th scenario key of c, or "" past the end.
func key(c domain.Card, i int) string {
	if i < len(c.Keys) {
		return c.Keys[i]
	}
	return ""
}

func missing(c domain.Card, k string) bool {
	for _, m := range c.Missing {
		if m == k {
			return true
		}
	}
	return false
}
