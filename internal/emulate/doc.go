// Package emulate exposes debug endpoints that simulate availability
// problems so probe behaviour can be observed without breaking anything:
//
//	GET /emulate-liveness-issue      liveness  -> BROKEN
//	GET /emulate-liveness-recovery   liveness  -> CORRECT
//	GET /emulate-readiness-issue     readiness -> REFUSING_TRAFFIC
//	GET /emulate-readiness-recovery  readiness -> ACCEPTING_TRAFFIC
//	GET /emulate-dependency-down     dependency reported DOWN
//	GET /emulate-dependency-up       dependency reported UP
//
// The endpoints are unauthenticated and meant for demos and tests only.
package emulate
