// Package services holds the stateful core of the client.
//
// Session owns the authenticated/anonymous state: it drives sign-in and
// sign-up calls, persists the authenticated flag in the metadata repository
// and is consulted by the CLI before any catalog view is shown.
//
// CatalogStore owns the catalog snapshot: a single load of the remote list,
// read-side views over it, and bookmark toggles reconciled with the value
// the server returns.
//
// Both are safe for concurrent use. Neither knows about presentation; the
// CLI turns their outcomes into notifications.
package services
