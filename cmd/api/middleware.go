package main

import (
	"net/http"
)

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(request.RemoteAddr); !allow {
				app.rateLimitExceededResponse(writer, request, retryAfter.String())
				return
			}
		}
		next.ServeHTTP(writer, request)
	})
}
