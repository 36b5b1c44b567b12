// Package server provides the HTTP server of the serve command.
//
// The server uses the Gin web framework with zap request logging and panic
// recovery (gin-contrib/zap).
//
// # Routes
//
//	/healthz     → 200 when the source database answers a ping, 503 otherwise
//	/metrics     → Prometheus metrics of inventory builds
//	/api/v1/*    → routes registered by the caller (see package handlers)
//	anything else → 404 { "error": "not found" }
//
// # Server Modes
//
//   - dev: gin debug mode
//   - prod: gin release mode
//
// # Usage Example
//
//	srv, err := server.NewServer(cfg, st, m.Handler(), func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, h)
//	})
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//	<-ctx.Done()
//	srv.Stop(shutdownCtx)
package server
