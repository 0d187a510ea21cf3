package auth

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to interpret local phone formats.
// SafeStay launched in Egypt, where numbers are commonly written as
// "01012345678" rather than "+201012345678".
var DefaultPhoneRegion = "EG"

// NormalizePhone canonicalizes a phone number to E.164 when it parses for
// the given region. Unparseable input is returned trimmed, so lookups and
// uniqueness checks stay consistent with what was stored.
func NormalizePhone(raw string, region ...string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	reg := DefaultPhoneRegion
	if len(region) > 0 && region[0] != "" {
		reg = region[0]
	}

	num, err := phonenumbers.Parse(trimmed, reg)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(num) {
		return trimmed
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
