// Package category defines the fixed extension-to-category table used to sort
// files.
//
// A Table is an ordered, immutable list of categories. Lookups walk the table
// in order and the first category listing an extension wins, so a table that
// lists the same extension twice still resolves deterministically. Extensions
// are compared case-insensitively; names without an extension never match.
package category
