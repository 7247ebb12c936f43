package logger

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Key substrings whose values are always fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"passphrase",
	"secret",
	"token",
	"hmac",
	"key",
	"credential",
	"auth",
}

// secretHexLen is the length of a hex-encoded client secret.
const secretHexLen = 64

const redactedValue = "***REDACTED***"

// redactSensitive masks attribute values that are, or look like, client
// credentials. Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		strVal := a.Value.String()
		if strVal == "" {
			return a
		}
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if IsSensitiveValue(strVal) {
			return slog.String(a.Key, maskValue(strVal))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}
	return a
}

// maskValue keeps the first and last 3 characters of value.
func maskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// RedactString masks value if it looks like a credential and returns it
// unchanged otherwise.
func RedactString(value string) string {
	if IsSensitiveValue(value) {
		return maskValue(value)
	}
	return value
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether value has the shape of a client secret
// or a client token.
func IsSensitiveValue(value string) bool {
	if len(value) == secretHexLen && isLowerHex(value) {
		return true
	}
	if len(value) == 36 {
		if _, err := uuid.Parse(value); err == nil {
			return true
		}
	}
	return false
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
