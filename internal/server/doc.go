// Package server provides HTTP routing, middleware, and a local stand-in for the LMS topics endpoint.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Development Backend
//
// [TopicsHandler] serves POST /topic/multiple. Each record is checked with go-playground/validator
// (course.courseID must be positive, topicID must not be negative) and accepted batches are kept in memory.
// [New] wires it behind [Logging] and a token-bucket [RateLimit] so the CLI and TUI can be exercised
// without the real backend.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
