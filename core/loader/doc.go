// Package loader mounts the service's features on the fiber app.
//
// The catalog and integrity features implement Feature and are registered
// with a Manager in cmd/start.go. LoadAll mounts them in registration order
// and skips any feature whose IsEnabled returns false.
package loader
