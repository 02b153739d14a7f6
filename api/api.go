// Package api implements a JSON-API for registering & resolving usernames
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	golog "github.com/ipfs/go-log"
	apiutil "github.com/irysname/irysname/api/util"
	"github.com/irysname/irysname/config"
	"github.com/irysname/irysname/lib"
	"github.com/irysname/irysname/version"
	"golang.org/x/sync/errgroup"
)

var (
	log = golog.Logger("irysapi")
	// APIVersion is the version string that is written in API responses
	APIVersion = version.Version
)

// shutdownTimeout bounds how long in-flight requests get to finish
const shutdownTimeout = 5 * time.Second

// Server wraps an irysname instance, providing access via http
// Create one with New, start it up with Serve
type Server struct {
	*lib.Instance
	Mux *mux.Router
}

// New creates a new server from an instance
func New(inst *lib.Instance) Server {
	return Server{
		Instance: inst,
	}
}

// Serve starts the server. It will block until ctx is cancelled or the
// listener fails
func (s Server) Serve(ctx context.Context) (err error) {
	cfg := s.Config()
	s.Mux = NewServerRoutes(s)

	server := &http.Server{
		Handler: s.Mux,
	}

	log.Infof("irysname version v%s%s", APIVersion, cfg.SummaryString())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := StartServer(cfg.API, server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			log.Errorf("closing http server: %s", err)
		}
		return s.Instance.Shutdown(sctx)
	})
	return g.Wait()
}

// StartServer interprets info from config to start the server
// if config.Enabled == false, StartServer is a noop
func StartServer(c *config.API, s *http.Server) error {
	s.Addr = c.Address()
	if !c.Enabled || c.Port == 0 {
		return nil
	}
	return s.ListenAndServe()
}

// HomeHandler responds with a running message on the empty path, 404 for
// everything else
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "" || r.URL.Path == "/" {
		apiutil.WriteResponse(w, map[string]string{
			"message": "irysname API is running",
			"version": APIVersion,
		})
		return
	}
	apiutil.NotFoundHandler(w, r)
}

// NewServerRoutes returns a Muxer that has all API routes
func NewServerRoutes(s Server) *mux.Router {
	cfg := s.Config()

	m := mux.NewRouter()
	m.Use(corsMiddleware(cfg.API.AllowedOrigins))
	m.NotFoundHandler = http.HandlerFunc(apiutil.NotFoundHandler)

	// misc endpoints
	m.Handle(AEHome.String(), s.noLogMiddleware(HomeHandler))
	m.Handle(AEHealth.String(), s.noLogMiddleware(HealthHandler(s.Instance)))
	m.Handle(AEMetrics.String(), s.Metrics().Handler()).Methods(http.MethodGet)

	// username endpoints
	m.Handle(AECheck.String(), s.middleware(CheckHandler(s.Instance))).Methods(http.MethodGet, http.MethodOptions)
	m.Handle(AERegister.String(), s.middleware(RegisterHandler(s.Instance))).Methods(http.MethodPost, http.MethodOptions)
	m.Handle(AEList.String(), s.middleware(ListHandler(s.Instance))).Methods(http.MethodGet, http.MethodOptions)
	m.Handle(AEResolve.String(), s.middleware(ResolveHandler(s.Instance))).Methods(http.MethodGet, http.MethodOptions)

	return m
}
