package jpqlvalue

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainRewriteCache separates cache-key hashes from any other hash
// domain that might eventually share this package, the same technique
// used to separate hash domains in a content-addressed cache: prefix
// every hashed value with a domain tag so two different kinds of input
// can never collide just because their raw bytes happen to match.
const DomainRewriteCache = "jpqlrw/cache/v1"

// ContentHash computes SHA-256 over domain || 0x00 || data. The null
// byte prevents a domain string and a data prefix from colliding.
func ContentHash(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RewriteCacheKey hashes a query string together with an arbitrary,
// canonically-encodable options value (typically a map built by the
// caller from its sort options, as jpqlcache does) into a single cache
// key.
func RewriteCacheKey(query string, options any) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"query":   query,
		"options": options,
	})
	if err != nil {
		return "", err
	}
	return ContentHash(DomainRewriteCache, canonical), nil
}
