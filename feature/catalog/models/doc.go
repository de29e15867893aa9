// Package models defines the gorm rows of the catalog schema and their
// conversions to the reload engine's types.
package models
