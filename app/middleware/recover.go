package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"tasks-go/app/apperror"
)

// Recover is the last-resort fault handler. A panic becomes a JSON error
// response using the panic value's status hint, or 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			err, ok := v.(error)
			if !ok {
				err = errors.New(fmt.Sprint(v))
			}

			statusCode := apperror.Respond(w, err, http.StatusInternalServerError, apperror.DefaultMessage)
			hlog.FromRequest(r).Error().
				Err(err).
				Int("status", statusCode).
				Msg("recovered from panic")
		}()

		next.ServeHTTP(w, r)
	})
}
