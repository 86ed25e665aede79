package handler

import "errors"

const (
	// APIPath is the prefix of every JSON route.
	APIPath = "/api"

	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// IDParam is the route parameter holding a numeric id.
	IDParam = "id"

	// ErrNilDepsFatalLogMsg is used if the router or a dependency is nil.
	ErrNilDepsFatalLogMsg = "router or dependencies are nil"
)

// ErrNilDeps is returned by Init when the router or a dependency is nil.
var ErrNilDeps = errors.New(ErrNilDepsFatalLogMsg)
