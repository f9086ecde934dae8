// Package client talks to the Loopin server.
//
// GRPCClient owns the connection and the current session. Its unary
// interceptor attaches the access token, and when the server reports
// "token expired" it rotates the token pair once and retries the call.
// Every rotation goes through one place and is reported to the
// OnSessionChange callback so the caller can persist it.
//
// gRPC status codes are mapped to the sentinel errors in errors.go, to be
// matched with errors.Is.
//
// InitDatabase opens the local SQLite store and applies the embedded goose
// migrations.
package client
