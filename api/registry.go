package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/irysname/irysname/api/util"
	"github.com/irysname/irysname/lib"
	"github.com/irysname/irysname/registry"
)

// invalidCheckFormat is the detail for malformed usernames on the check
// endpoint, which spells out the rules
const invalidCheckFormat = "Invalid username format. Must be 3-20 characters (letters, numbers, underscores)"

// AvailabilityResponse is the body of a username check
type AvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// ListResponse is the body of a username listing
type ListResponse struct {
	Count     int                `json:"count"`
	Usernames []*registry.Record `json:"usernames"`
}

// HealthHandler reports instance status
func HealthHandler(inst *lib.Instance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := inst.Registry().Health(r.Context())
		if err != nil {
			util.RespondWithError(w, err)
			return
		}
		util.WriteResponse(w, res)
	}
}

// CheckHandler reports whether a username is available
func CheckHandler(inst *lib.Instance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]
		available, err := inst.Registry().CheckAvailability(r.Context(), username)
		if err != nil {
			if errors.Is(err, registry.ErrInvalidFormat) {
				err = util.NewAPIError(http.StatusBadRequest, invalidCheckFormat)
			}
			util.RespondWithError(w, err)
			return
		}
		util.WriteResponse(w, AvailabilityResponse{
			Username:  username,
			Available: available,
		})
	}
}

// maxRegisterBodySize caps registration request bodies, metadata included
const maxRegisterBodySize = 64 << 10

// RegisterHandler claims a username
func RegisterHandler(inst *lib.Instance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := &lib.RegisterParams{}
		body := http.MaxBytesReader(w, r.Body, maxRegisterBodySize)
		if err := json.NewDecoder(body).Decode(p); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				util.WriteErrResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxRegisterBodySize))
				return
			}
			util.WriteErrResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		res, err := inst.Registry().Register(r.Context(), p)
		if err != nil {
			util.RespondWithError(w, err)
			return
		}
		util.WriteResponse(w, res)
	}
}

// ListHandler lists registered usernames, newest first
func ListHandler(inst *lib.Instance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := util.ReqParamInt(r, "limit", lib.DefaultListLimit)
		recs, err := inst.Registry().List(r.Context(), limit)
		if err != nil {
			util.RespondWithError(w, err)
			return
		}
		if recs == nil {
			recs = []*registry.Record{}
		}
		util.WriteResponse(w, ListResponse{
			Count:     len(recs),
			Usernames: recs,
		})
	}
}

// ResolveHandler fetches the record for a username
func ResolveHandler(inst *lib.Instance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := inst.Registry().Resolve(r.Context(), mux.Vars(r)["username"])
		if err != nil {
			util.RespondWithError(w, err)
			return
		}
		util.WriteResponse(w, rec)
	}
}
