package util

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteResponse writes data as a JSON body with a 200 status
func WriteResponse(w http.ResponseWriter, data interface{}) error {
	return jsonResponse(w, http.StatusOK, data)
}

// WriteErrResponse writes a JSON error detail & HTTP status
func WriteErrResponse(w http.ResponseWriter, code int, detail string) error {
	return jsonResponse(w, code, ErrorResponse{Detail: detail})
}

// NotFoundHandler is a JSON 404 for unmatched routes
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("%s %s NOT FOUND", r.Method, r.URL.Path)
	WriteErrResponse(w, http.StatusNotFound, "Not Found")
}

// EmptyOkHandler is for handling OPTIONS requests
func EmptyOkHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func jsonResponse(w http.ResponseWriter, code int, body interface{}) error {
	res, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(res)
	return err
}
