// Command devgateway serves an in-memory stand-in for the gateway's GraphQL
// index and the delegated uploader, for local development against the
// "gateway" backend without touching the real network
package main

import (
	"net/http"
	"os"

	logger "github.com/ipfs/go-log"
	"github.com/irysname/irysname/registry"
	"github.com/irysname/irysname/registry/regserver/handlers"
)

var log = logger.Logger("devgateway")

func main() {
	logger.SetLogLevel("devgateway", "info")
	logger.SetLogLevel("regserver", "info")

	port := os.Getenv("PORT")
	if port == "" {
		port = "3002"
	}

	var opts []func(o *handlers.RouteOptions)
	if pk := os.Getenv("PRIVATE_KEY"); pk != "" {
		key, err := registry.ParsePrivateKey(pk)
		if err != nil {
			log.Fatalf("reading PRIVATE_KEY: %s", err)
		}
		opts = append(opts, handlers.OptAddress(registry.KeyAddress(key)))
	}

	s := http.Server{
		Addr:    ":" + port,
		Handler: handlers.NewRoutes(registry.NewMemRecords(), opts...),
	}

	log.Infof("serving on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil {
		log.Info(err.Error())
	}
}
