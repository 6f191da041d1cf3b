package store

import (
	"github.com/crewwatch-io/crewwatch/internal/logging"
)

// Middleware wraps the dispatch chain. Each middleware receives the next
// dispatcher and returns its replacement; the chain is assembled once at
// construction so dispatch stays allocation-free.
type Middleware func(next DispatchFunc) DispatchFunc

// Logging returns a middleware that logs every action kind at debug level
// before it reaches the reducer.
func Logging() Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(action Action) {
			logging.Debug("dispatching action", "kind", action.Kind())
			next(action)
		}
	}
}
