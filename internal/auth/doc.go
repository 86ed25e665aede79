// Package auth provides dashboard authentication and authorization.
//
// Accounts live in the local database with Argon2id password hashes and an
// optional TOTP second factor. Every account holds one of two roles:
//   - user: may read everything on the dashboard
//   - admin: may additionally change settings and the command catalog
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequireUser: resolves the session cookie to a user, 401 otherwise
//   - RequireAdmin: must run after RequireUser, 403 for non-admins
//
// Example usage:
//
//	provider := auth.NewLocalProvider(db)
//	user, err := provider.Authenticate(username, password, otp)
//
//	api := app.Group("/api", auth.RequireUser(store, db))
//	api.Patch("/settings", auth.RequireAdmin(), handler)
package auth
