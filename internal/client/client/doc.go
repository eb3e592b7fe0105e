// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. HTTPClient speaks the /api/v1 REST contract (see internal/apiv1). Every
//     response is an apiv1.Envelope; a failed envelope, an undecodable body or
//     a transport failure becomes a *models.NetworkError.
//  2. CategoriesAPI and TransactionsAPI expose the remote capability used by
//     the local repositories: CreateRemote, UpdateRemote, DeleteRemote,
//     ListRemote.
//  3. Ping checks reachability through the server's gRPC health service.
//  4. InitDatabase and RunMigrations bootstrap the local SQLite file with the
//     embedded goose migrations.
//
// # Error Handling
//
// NetworkError wraps sentinel errors that callers can match with errors.Is:
// ErrUnavailable (no response), ErrUnauthorized (401) and
// common.ErrorNotFound (404). Protected calls made without a stored token
// fail with models.ErrNoSession before any request is sent.
package client
