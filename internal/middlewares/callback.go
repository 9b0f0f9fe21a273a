package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// CallbackSecretHeader carries the shared secret on payment provider callbacks.
const CallbackSecretHeader = "X-Callback-Secret"

// CallbackMiddleware rejects callbacks without the shared secret.
func CallbackMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(CallbackSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Log.Warnw("callback rejected", "uri", r.RequestURI)
				writeError(w, http.StatusUnauthorized, models.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
