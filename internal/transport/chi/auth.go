package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// exemptPaths bypass authentication so probes and scrapers need no key.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

const bearerPrefix = "Bearer "

// keyring holds the accepted API keys.
type keyring [][]byte

func newKeyring(apiKeys []string) keyring {
	keys := make(keyring, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}
	return keys
}

// accepts compares in constant time against every key.
func (k keyring) accepts(token string) bool {
	ok := 0
	for _, key := range k {
		ok |= subtle.ConstantTimeCompare(key, []byte(token))
	}
	return ok == 1
}

// BearerAuthMiddleware rejects /api requests without a known Bearer key.
// With no keys configured the middleware is a pass-through.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := newKeyring(apiKeys)

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			switch {
			case auth == "":
				unauthorized(w, "missing authorization header")
			case !strings.HasPrefix(auth, bearerPrefix):
				unauthorized(w, "authorization header must use Bearer scheme")
			case !keys.accepts(strings.TrimPrefix(auth, bearerPrefix)):
				unauthorized(w, "invalid api key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="cinedex"`)
	writeError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
}
