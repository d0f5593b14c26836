// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding/decoding, error responses,
// parameter parsing, and common HTTP middleware patterns.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, resource)
//	httputil.WriteCreated(w, resource)
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteBadRequest(w, "Invalid input")
//	httputil.WriteNotFoundError(w, "module not found")
//
// # Request Parsing
//
// JSON parsing:
//
//	var req RescanRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Path and query parameters:
//
//	name, ok := httputil.ParsePathStringOrError(w, r, "name")
//	format := httputil.ParseQueryString(r, "format", "table")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.RequestIDMiddleware(),
//	)
//
// # Related Packages
//
//   - pkg/api: Uses these helpers in every handler
package httputil
