// Package apiv1 is the version 1 wire contract shared by the finkeeper client
// and server: request/response DTOs, the response envelope, and route paths.
//
// Every response body is an Envelope. Category color travels as a "#RRGGBB"
// string; integer colors are not accepted by this version of the API.
package apiv1
