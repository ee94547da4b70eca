// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. The Client interface: the REST contract of the media catalog API
//     (catalog read, bookmark toggle, sign-in, sign-up).
//  2. HTTPClient, the net/http implementation. It keeps a cookie jar so the
//     session cookie set by sign-in travels with later requests, tags every
//     request with an X-Request-ID and maps transport and decoding failures
//     to sentinel errors.
//  3. InitDatabase / RunMigrations, which open the local SQLite state DB and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match failures with errors.Is: ErrUnavailable (network, timeout,
// cancelled context), ErrMalformedResponse (body cannot be decoded or lacks
// required fields), ErrUnexpectedStatus (non-2xx reply).
//
// Auth endpoints answer rejections with a well-formed {success, message}
// envelope; SignIn and SignUp return that envelope even on a 4xx status so a
// wrong password is never reported as a server error.
package client
