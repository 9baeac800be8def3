// Package school holds the tenant-scoped school records that authorization and
// route binding read: teachers (with their duties, module grants and branch
// memberships) and students.
//
// The package is storage-agnostic. Records are loaded by the stores in
// pkg/pgstore or by in-memory fixtures, and consumed by pkg/access and
// pkg/routebind.
package school
