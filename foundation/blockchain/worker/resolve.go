package worker

// resolveOperations handles reconciling the chain with the known peers.
func (w *Worker) resolveOperations() {
	w.evHandler("worker: resolveOperations: G started")
	defer w.evHandler("worker: resolveOperations: G completed")

	for {
		select {
		case <-w.startSolve:
			if !w.isShutdown() {
				w.runResolveOperation()
			}
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runResolveOperation()
			}
		case <-w.shut:
			w.evHandler("worker: resolveOperations: received shut signal")
			return
		}
	}
}

// runResolveOperation asks the known peers for their chains and adopts
// the longest one.
func (w *Worker) runResolveOperation() {
	w.evHandler("worker: runResolveOperation: started")
	defer w.evHandler("worker: runResolveOperation: completed")

	if len(w.state.RetrieveKnownPeers()) == 0 {
		w.evHandler("worker: runResolveOperation: no known peers")
		return
	}

	blocks := w.state.Resolve(w.ctx)

	w.evHandler("worker: runResolveOperation: blocks[%d]", len(blocks))
}
