package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL derives the avatar URL for an email address following the
// Gravatar convention: md5 hex of the trimmed, lowercased address.
// Size 200, rating pg, "mystery man" fallback.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
