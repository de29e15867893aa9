// Package utils provides shared helpers for catalog-sync.
// The conversions normalize the loosely typed values portal and catalog
// backends put in their JSON payloads.
package utils
