// Package authn turns a bearer JWT into an access.Principal stored in the
// request context. Tokens are HMAC-signed and carry only the user ID as the
// subject; role and tenant links are loaded fresh through a PrincipalLoader
// on every request.
//
// A missing token is not an error here: the request continues without a
// principal and access.Guard answers ErrAuthenticationRequired. A malformed,
// expired or unknown token is rejected immediately.
package authn
