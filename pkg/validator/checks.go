package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugRegex       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	objectIDRegex   = regexp.MustCompile(`^[a-f0-9]{24}$`)
	couponCodeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,31}$`)
	alphanumRegex   = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// isoDateLayouts are the accepted ISO-8601 shapes, most specific first.
var isoDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// IsEmail reports whether value is a plausible email address for web use:
// RFC 5322 parseable with a dotted domain.
func IsEmail(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}

// IsURL reports whether value is an absolute http(s) URL.
func IsURL(value string) bool {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsISODate reports whether value parses as an ISO-8601 date or timestamp.
func IsISODate(value string) bool {
	_, err := ParseISODate(value)
	return err == nil
}

// ParseISODate parses an ISO-8601 date or timestamp.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range isoDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// IsSlug reports whether value is a lowercase hyphenated URL slug.
func IsSlug(value string) bool {
	return slugRegex.MatchString(value)
}

// IsObjectID reports whether value looks like a 24-hex-char document id.
func IsObjectID(value string) bool {
	return objectIDRegex.MatchString(value)
}

// IsCouponCode reports whether value matches the coupon code format:
// 3-32 chars, uppercase letters, digits and hyphens, starting alphanumeric.
func IsCouponCode(value string) bool {
	return couponCodeRegex.MatchString(value)
}

// IsAlphanumeric reports whether value contains only letters and digits.
func IsAlphanumeric(value string) bool {
	return alphanumRegex.MatchString(value)
}

// IsNumericString reports whether value parses as a number.
func IsNumericString(value string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil
}
