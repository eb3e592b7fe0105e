// Package httpapi serves the version 1 REST API over chi.
//
// Every response body is an apiv1.Envelope. Routes other than register and
// login require an "Authorization: Bearer <token>" header; the user id
// carried by the token scopes every category and transaction call.
package httpapi
