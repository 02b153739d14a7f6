package util

import (
	"errors"
	"net/http"

	golog "github.com/ipfs/go-log"
	"github.com/irysname/irysname/lib"
	"github.com/irysname/irysname/registry"
)

var log = golog.Logger("irysapiutil")

// APIError is an error that specifies its http status code
type APIError struct {
	Code    int
	Message string
}

// NewAPIError returns a new APIError
func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// Error renders the APIError as a string
func (err *APIError) Error() string {
	return err.Message
}

// RespondWithError writes the error, with meaningful text, to the http response
func RespondWithError(w http.ResponseWriter, err error) {
	var aerr *APIError
	if errors.As(err, &aerr) {
		WriteErrResponse(w, aerr.Code, aerr.Message)
		return
	}
	if errors.Is(err, lib.ErrBadArgs) {
		WriteErrResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, registry.ErrInvalidFormat) {
		WriteErrResponse(w, http.StatusBadRequest, "Invalid username format")
		return
	}
	if errors.Is(err, registry.ErrUsernameTaken) {
		WriteErrResponse(w, http.StatusConflict, "Username is already taken")
		return
	}
	if errors.Is(err, registry.ErrSignatureInvalid) {
		WriteErrResponse(w, http.StatusUnauthorized, "Signature verification failed")
		return
	}
	var uerr *registry.UploadError
	if errors.As(err, &uerr) {
		detail := uerr.Detail
		if detail == "" {
			detail = "Upload failed"
		}
		WriteErrResponse(w, http.StatusInternalServerError, detail)
		return
	}
	if errors.Is(err, registry.ErrNotFound) {
		WriteErrResponse(w, http.StatusNotFound, "Username not found")
		return
	}
	if errors.Is(err, registry.ErrBackendUnavailable) {
		WriteErrResponse(w, http.StatusServiceUnavailable, "Failed to fetch usernames")
		return
	}

	log.Errorf("%s: responding with 500, the code path that generated this should return a known error type", err)
	WriteErrResponse(w, http.StatusInternalServerError, "Internal server error")
}
