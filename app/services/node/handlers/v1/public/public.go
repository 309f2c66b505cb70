// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/ardanlabs/toychain/business/web/errs"
	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
	"github.com/ardanlabs/toychain/foundation/blockchain/state"
	"github.com/ardanlabs/toychain/foundation/events"
	"github.com/ardanlabs/toychain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// RegisterPeer adds a node to the set of known peers.
func (h Handlers) RegisterPeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var np newPeer
	if err := web.Decode(r, &np); err != nil {
		return errs.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("register peer", "traceid", web.GetTraceID(ctx), "address", np.Address)

	added, err := h.State.RegisterPeer(peer.New(np.Address))
	if err != nil {
		return errs.FromNode(err)
	}

	resp := status{Status: "peer already known"}
	if added {
		resp.Status = "peer registered"
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Peers returns the set of known peers.
func (h Handlers) Peers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveKnownPeers(), http.StatusOK)
}

// Resolve reconciles the chain with the known peers and returns the chain
// the node holds afterwards.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.Resolve(ctx)
	return web.Respond(ctx, w, database.ChainData{Blocks: blocks}, http.StatusOK)
}

// Mine mines a new block holding the submitted transaction.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewRequestError(err, http.StatusBadRequest)
	}

	tx, err := toDBTx(ntx)
	if err != nil {
		return errs.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("mine", "traceid", web.GetTraceID(ctx), "tx", tx)

	block, err := h.State.MineNewBlock(ctx, []database.Tx{tx})
	if err != nil {
		return errs.FromNode(err)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Chain returns the full chain held by the node.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, database.ChainData{Blocks: h.State.RetrieveChain()}, http.StatusOK)
}
