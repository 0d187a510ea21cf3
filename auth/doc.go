// Package auth implements the SafeStay authentication and authorization
// subsystem: bcrypt credential hashing, a dual-secret JWT token service
// issuing short-lived access tokens and long-lived refresh tokens, identity
// resolution against the users store, and the HTTP surface (register, login,
// refresh, logout, me) together with the route protection middleware found
// under middleware/jwtware.
package auth
