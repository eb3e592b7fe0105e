package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// outbound requests, as "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
