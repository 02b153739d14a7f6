// Package handlers creates HTTP handler functions that emulate an Irys-style
// gateway & uploader on top of an in-memory transaction log
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	golog "github.com/ipfs/go-log"
	"github.com/irysname/irysname/registry"
)

var log = golog.Logger("regserver")

// SetLogLevel controls how detailed handler logging is
func SetLogLevel(level string) error {
	return golog.SetLogLevel("regserver", level)
}

// RouteOptions defines configuration details for NewRoutes
type RouteOptions struct {
	// UploadError, when set, makes every upload fail with this detail
	UploadError string
	// QueryUnavailable makes the GraphQL endpoint answer 503
	QueryUnavailable bool
	// Address reported as the uploader identity
	Address string
	// Clock, when set, stamps uploads in place of the client timestamp
	Clock func() int64
}

// OptUploadError configures uploads to fail with detail
func OptUploadError(detail string) func(o *RouteOptions) {
	return func(o *RouteOptions) {
		o.UploadError = detail
	}
}

// OptQueryUnavailable configures the GraphQL endpoint to fail
func OptQueryUnavailable() func(o *RouteOptions) {
	return func(o *RouteOptions) {
		o.QueryUnavailable = true
	}
}

// OptAddress sets the uploader address reported by /balance
func OptAddress(addr string) func(o *RouteOptions) {
	return func(o *RouteOptions) {
		o.Address = addr
	}
}

// OptClock makes the uploader stamp records with clock, discarding the
// client's timestamp & tags
func OptClock(clock func() int64) func(o *RouteOptions) {
	return func(o *RouteOptions) {
		o.Clock = clock
	}
}

// NewRoutes allocates server handlers along standard routes
func NewRoutes(rs *registry.MemRecords, opts ...func(o *RouteOptions)) *http.ServeMux {
	o := &RouteOptions{
		Address: "0x0000000000000000000000000000000000000000",
	}
	for _, opt := range opts {
		opt(o)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthCheckHandler)
	mux.HandleFunc("/balance", logReq(NewBalanceHandler(o.Address)))
	mux.HandleFunc("/upload", logReq(NewUploadHandler(rs, o.UploadError, o.Clock)))
	mux.HandleFunc("/graphql", logReq(NewGraphQLHandler(rs, o.QueryUnavailable)))
	return mux
}

func logReq(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Infof("%s %s %s", time.Now().Format(time.RFC3339), r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	}
}

// HealthCheckHandler is a basic "hey I'm fine" for load balancers & co
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"irys_initialized": true,
	})
}

// NewBalanceHandler reports a fixed, unlimited devnet balance
func NewBalanceHandler(addr string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"balance": "0",
			"address": addr,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("writing response: %s", err)
	}
}
