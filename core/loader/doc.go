// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its own routes.
// The start command registers features with a Manager and calls LoadAll once
// the global middleware is in place.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
