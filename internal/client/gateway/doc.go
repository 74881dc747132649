// Package gateway is the client's HTTP view of the GoChat auth API.
//
// # Overview
//
// The Gateway interface is the transport-agnostic contract used by the
// session layer: Register, Login, Logout, GetProfile and UpdateProfile.
// HTTPGateway implements it over JSON/HTTP with resty. Every call is a
// single exchange; nothing is retried here.
//
// # Authentication
//
// In token mode a TokenSource supplies the bearer token for each request.
// In cookie mode the server's session cookie lives in the cookie jar passed
// with WithCookieJar, which the realtime dialer can share.
//
// # Error Handling
//
// Transport failures are *NetworkError (errors.Is(err, ErrUnavailable));
// non-2xx responses are *ServerRejection carrying the status and the parsed
// error body. A rejection with HTTP 401 or code "session_absent" matches
// common.ErrSessionAbsent; 401/403 also match ErrUnauthorized.
package gateway
