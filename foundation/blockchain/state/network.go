package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
	"github.com/cenkalti/backoff"
)

const baseURL = "http://%s/v1/node"

// statusError is returned by send when a node responds with anything
// other than a 200.
type statusError struct {
	StatusCode int
	Msg        string
}

func (se *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", se.StatusCode, se.Msg)
}

// isPermanent reports whether asking the node again can't change the
// answer. Client errors such as a missing route are permanent.
func isPermanent(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode >= 400 && se.StatusCode < 500
}

// NetRequestPeerChain asks the peer for its full chain. Failed requests are
// retried until the context is done.
func (s *State) NetRequestPeerChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	s.evHandler("state: NetRequestPeerChain: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerChain: completed: %s", pr)

	url := fmt.Sprintf("%s/blockchain", fmt.Sprintf(baseURL, pr.Host))

	var chain database.ChainData
	op := func() error {
		chain = database.ChainData{}
		err := send(ctx, http.MethodGet, url, nil, &chain)
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		s.evHandler("state: NetRequestPeerChain: %s: retry in %v: WARNING: %s", pr, next, err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond

	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		return nil, err
	}

	s.evHandler("state: NetRequestPeerChain: peer-node[%s]: blocks[%d]", pr, len(chain.Blocks))

	return chain.Blocks, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(ctx context.Context, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader

	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	if dataSend != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var client http.Client
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return &statusError{StatusCode: resp.StatusCode, Msg: string(msg)}
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
