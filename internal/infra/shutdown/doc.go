// Package shutdown coordinates graceful termination of long-running
// commands such as watch.
//
// A Handler waits for SIGINT or SIGTERM, a Trigger call or the end of the
// caller's context, then runs its named steps newest first under one
// timeout.
//
//	h := shutdown.NewHandler(5*time.Second, shutdown.WithLogger(log))
//	h.OnShutdown("status server", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
