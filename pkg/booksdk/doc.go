// Package booksdk is a Go client for the book review service.
//
// Unauthenticated operations (signup, login, email verification, password
// reset, health checks and bootstrap) hang off SDKClient. Login returns a
// Session that carries the token pair and rotates it transparently when the
// access token is about to expire:
//
//	client := booksdk.NewSDKClient("http://localhost:8080")
//	sess, err := client.Login(ctx, "reader@example.com", "secret")
//	if err != nil {
//		return err
//	}
//	books, err := sess.ListBooks(ctx, booksdk.Page{Limit: 20})
//
// Refresh tokens are single use. A Session serialises refreshes so that
// concurrent calls never present the same refresh token twice.
//
// Server errors are returned as *APIError; use errors.As to inspect the
// error_code:
//
//	var apiErr *booksdk.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == booksdk.CodeTokenRevoked {
//		// sign in again
//	}
//
// The request and response types in this package double as the wire types
// of the HTTP API.
package booksdk
