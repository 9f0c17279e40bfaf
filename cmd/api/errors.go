package main

import (
	"net/http"
)

func (app *application) internalServerError(writer http.ResponseWriter, request *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", request.Method, "path", request.URL.Path, "error", err.Error())
	app.slackNotifier.NotifyServerError(err, request)
	writeJSONError(writer, http.StatusInternalServerError, "internal_error", "the server encountered a problem and could not process your request")
}

// upstreamErrorResponse reports a failed media-store call. Unlike
// internalServerError the upstream message is relayed verbatim; that is the
// diagnostic contract for gateway failures.
func (app *application) upstreamErrorResponse(writer http.ResponseWriter, request *http.Request, operation string, err error) {
	app.logger.Errorw("upstream storage error", "operation", operation, "method", request.Method, "path", request.URL.Path, "error", err.Error())
	app.slackNotifier.NotifyUpstreamError(operation, err, request)
	writeJSONError(writer, http.StatusInternalServerError, "upstream_error", err.Error())
}

func (app *application) badRequestResponse(writer http.ResponseWriter, request *http.Request, err error) {
	app.logger.Warnw("bad request error", "method", request.Method, "path", request.URL.Path, "error", err.Error())
	writeJSONError(writer, http.StatusBadRequest, "bad_request", err.Error())
}

func (app *application) notFoundResponse(writer http.ResponseWriter, request *http.Request, err error) {
	app.logger.Warnw("not found error", "method", request.Method, "path", request.URL.Path, "error", err.Error())
	writeJSONError(writer, http.StatusNotFound, "not_found", err.Error())
}

func (app *application) methodNotAllowedResponse(writer http.ResponseWriter, request *http.Request, err error) {
	app.logger.Warnw("method not allowed error", "method", request.Method, "path", request.URL.Path, "error", err.Error())
	writeJSONError(writer, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}

func (app *application) rateLimitExceededResponse(writer http.ResponseWriter, request *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit error", "method", request.Method, "path", request.URL.Path, "retryAfter", retryAfter)
	writer.Header().Set("Retry-After", retryAfter)
	writeJSONError(writer, http.StatusTooManyRequests, "rate_limit_exceeded", "rate limit exceeded, retry after: "+retryAfter)
}
