// Package http contains the HTTP handlers for the hoopsight dashboard API.
//
// Handlers stay thin: they parse and validate the request, call a service,
// and render the result with go-chi/render. Anything resembling business
// logic lives in internal/services; anything touching the dataset lives
// behind the store. A request passes through the chi router and the
// middleware chain (request ID, telemetry span, rate limit) before it
// reaches a handler.
//
// Dashboard responses wrap the payload in a small envelope so clients can
// distinguish an empty view from a failed request:
//
//	{
//	    "status": "success",
//	    "data": [...],
//	    "count": 30
//	}
//
// Errors are RFC 7807 problem documents produced by the shared error
// handler:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "VALIDATION_FAILED",
//	    "status": 400,
//	    "detail": "season: must be a season year",
//	    "instance": "/api/dashboard/team-scoring",
//	    "trace_id": "8b5f3a0e4c6d4f1a9e2b7c8d0a1b2c3d"
//	}
//
// Service sentinel errors map to stable status codes: ErrDatasetNotLoaded
// becomes 503, ErrUnknownView becomes 404 and ErrUnknownFormat becomes 400.
//
// Handler tests run against httptest with mocked services; the router
// tests in internal/app cover the full middleware chain.
package http
