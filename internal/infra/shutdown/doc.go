// Package shutdown coordinates graceful shutdown of sealslot-server.
//
// Hooks are registered as components start and run in reverse order when
// SIGINT or SIGTERM arrives (or the parent context ends), under a shared
// timeout. Every hook runs even if an earlier one fails; failures are
// returned together.
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown("http", srv.Stop)
//	err := h.Wait(ctx)
package shutdown
