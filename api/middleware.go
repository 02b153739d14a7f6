package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/irysname/irysname/api/util"
)

// middleware handles request logging
func (s Server) middleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.mwFunc(handler, true)
}

func (s Server) noLogMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.mwFunc(handler, false)
}

func (s Server) mwFunc(handler http.HandlerFunc, shouldLog bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Method == http.MethodOptions {
			util.EmptyOkHandler(w, r)
			return
		}

		if ok := s.readOnlyCheck(r); ok {
			handler(w, r)
		} else {
			util.WriteErrResponse(w, http.StatusForbidden, "irysname server is in read-only mode, only GET requests are allowed")
		}

		if shouldLog {
			log.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
		}
	}
}

func (s Server) readOnlyCheck(r *http.Request) bool {
	return !s.Config().API.ReadOnly || r.Method == http.MethodGet || r.Method == http.MethodOptions
}

// corsMiddleware adds CORS header info for allowed origins. "*" allows any
// origin
func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				for _, o := range allowedOrigins {
					if o == "*" || o == origin {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
						w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
						w.Header().Set("Access-Control-Allow-Credentials", "true")
						break
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
