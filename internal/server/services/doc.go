// Package services contains server-side business logic: account
// registration and login, and the per-user category and transaction stores
// the REST API exposes.
//
// Services return sentinel errors from internal/common (ErrorBadRequest,
// ErrorNotFound, ErrorAlreadyExists, ErrorUnauthorized, ErrorInternal) so
// the transport can map them to status codes.
package services
