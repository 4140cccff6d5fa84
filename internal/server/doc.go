// Package server exposes the recommendation service over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers "METHOD /path/{param}" patterns on an [http.ServeMux],
// so method mismatches return 405 and path parameters are read with [http.Request.PathValue].
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which returns the [Route] values they serve,
// allowing a handler to encapsulate its route definitions.
//
//   - [RecommendationHandler] : public recommendation endpoints
//   - [AdminHandler] : reset and scenario endpoints, registered only outside production mode
//
// POST /recommendations/create/{amount} shares a pattern with the vote routes, so
// [RecommendationHandler] dispatches on the second segment and forwards "create" to the admin handler.
// POST /scenarios/{amount} is the same operation under its own prefix.
//   - [HealthHandler] : liveness probe
//
// # Middleware
//
// [Server] wraps the router with panic recovery, request ids, request logging, CORS
// (go-chi/cors) and an optional token-bucket rate limiter (x/time/rate). Prometheus
// metrics are recorded per route.
//
// # Errors
//
// Every error response has the body {"type": "...", "message": "..."}:
//   - services conflict → 409
//   - services not_found → 404
//   - validation failure → 422, with a "fields" array
//   - anything else → 500 with a generic message; the cause is logged
package server
