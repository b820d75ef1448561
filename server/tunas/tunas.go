// Package tunas has services for interacting with the muchd server backend
// decoupled from the API that accesses it.
package tunas

import (
	"github.com/dekarrin/muchk/internal/cache"
	"github.com/dekarrin/muchk/server/dao"
)

// Service is a service for interacting with and modifying the muchd server
// backend. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB and a SystemCache before attempting to use it.
type Service struct {
	// DB is the persistence store of the service.
	DB dao.Store

	// SystemCache holds the parsed form of systems in DB, keyed by their
	// source text, so that RunCheck does not re-parse a large LTS on every
	// check against it.
	SystemCache *cache.Dir
}
