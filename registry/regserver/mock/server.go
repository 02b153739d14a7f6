// Package mock provides a mock gateway & uploader for testing purposes
// it mocks the behaviour of the network with in-memory storage
package mock

import (
	"net/http/httptest"

	"github.com/irysname/irysname/registry"
	"github.com/irysname/irysname/registry/regclient"
	"github.com/irysname/irysname/registry/regserver/handlers"
)

func init() {
	// don't need verbose logging when working with mock servers
	handlers.SetLogLevel("error")
}

// NewMockServer creates an in-memory mock server & a registry client to match
func NewMockServer(opts ...func(o *handlers.RouteOptions)) (*regclient.Client, *httptest.Server) {
	return NewMockServerRecords(registry.NewMemRecords(), opts...)
}

// NewMockServerRecords creates a mock server & client with a passed-in log
func NewMockServerRecords(rs *registry.MemRecords, opts ...func(o *handlers.RouteOptions)) (*regclient.Client, *httptest.Server) {
	s := httptest.NewServer(handlers.NewRoutes(rs, opts...))
	c := regclient.NewClient(&regclient.Config{
		GraphQLURL:  s.URL + "/graphql",
		UploaderURL: s.URL,
	})
	return c, s
}
