// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/toychain/app/services/node/handlers/v1/private"
	"github.com/ardanlabs/toychain/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/toychain/foundation/blockchain/state"
	"github.com/ardanlabs/toychain/foundation/events"
	"github.com/ardanlabs/toychain/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodPost, version, "/nodes/register", pbl.RegisterPeer)
	app.Handle(http.MethodGet, version, "/nodes", pbl.Peers)
	app.Handle(http.MethodGet, version, "/nodes/resolve", pbl.Resolve)
	app.Handle(http.MethodPost, version, "/mine", pbl.Mine)
	app.Handle(http.MethodGet, version, "/blockchain", pbl.Chain)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/blockchain", prv.Chain)
	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
}
