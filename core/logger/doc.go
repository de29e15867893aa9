// Package logger provides a structured logging facility based on Zap.
//
// Debug level selects zap's development configuration, every other level the
// production one. Format "console" switches to a colored console encoder.
//
// # Context Awareness
//
// WithRayID attaches the request's RayID (set by the rayid middleware) so every
// log line of a request can be correlated. WithAccount does the same for the
// account a reload is working on.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
