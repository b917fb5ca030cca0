// Package server exposes a desktop over HTTP. It provides the JSON API and
// WebSocket event stream a browser front end drives, optional static
// serving of that front end, and an http.Server wrapper with graceful
// shutdown.
//
// Example usage:
//
//	api := server.NewAPI(d, log, server.APIConfig{StaticDir: "./web"})
//	defer api.Close()
//	srv := server.New(server.Config{Addr: ":8080", Handler: api, Logger: log})
//	if err := srv.Run(ctx); err != nil {
//		log.WithError(err).Fatal("serve")
//	}
package server
