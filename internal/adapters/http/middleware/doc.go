// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The server mounts them in this order, outermost first:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → AppContext → Handler
//
// AppContext sits innermost because the request memo keeps the context it
// was created with; placed there, memoized store reads see the request's
// span, log attributes and deadline.
package middleware
