// Package server exposes a set of compiled schemas over HTTP.
//
// Routes:
//
//	GET  /health                     liveness
//	GET  /health/ready               readiness (at least one schema loaded)
//	GET  /v1/schemas                 schema names, descriptions and fields
//	GET  /v1/schemas/{name}          schema definition
//	POST /v1/schemas/{name}/validate validate a JSON or YAML document
//	GET  /v1/locales                 message languages
//	GET  /v1/locales/{lang}          message templates of one language
//
// The validate endpoint answers 200 {"valid":true} for a valid document and
// 422 {"valid":false,"errors":{...}} with the error tree otherwise. Messages
// are rendered in the language picked from ?lang=, the lang cookie or
// Accept-Language. Malformed bodies and non-object documents get 400,
// unsupported content types 415 and oversized bodies 413.
//
// Run serves until the context is cancelled or SIGINT/SIGTERM arrives and
// then shuts down gracefully.
package server
