// Package identity authenticates users against stored credentials and
// exposes a composable filter engine over the user directory.
//
// The package provides two tightly coupled pieces: criteria composition,
// which folds a sparse UserFilter into a single narrowed bun query, and the
// authentication flow, which hashes the supplied password, reuses the same
// criteria to perform an exact-match lookup, and mints a signed JWT carrying
// identity claims.
package identity
