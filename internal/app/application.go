package app

import (
	"log/slog"

	"eudash.dev/internal/appconf"
	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. The snapshot is loaded once before the server starts and
// never changes afterwards.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Catalog  *catalog.Catalog
	Snapshot *dataset.Snapshot
}
