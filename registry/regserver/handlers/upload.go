package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/irysname/irysname/registry"
	"github.com/irysname/irysname/registry/regclient"
)

// NewUploadHandler accepts uploads and appends them to rs. A non-empty
// failWith makes every upload fail with that detail. A non-nil clock
// re-stamps each record and rebuilds its tags
func NewUploadHandler(rs *registry.MemRecords, failWith string, clock func() int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, regclient.UploadResponse{Error: "method not allowed"})
			return
		}

		req := regclient.UploadRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, regclient.UploadResponse{Error: err.Error()})
			return
		}
		if req.Username == "" || req.Owner == "" {
			writeJSON(w, http.StatusBadRequest, regclient.UploadResponse{Error: "Username and owner are required"})
			return
		}
		if failWith != "" {
			writeJSON(w, http.StatusInternalServerError, regclient.UploadResponse{Error: failWith})
			return
		}

		rec := &registry.Record{
			Username:  registry.Normalize(req.Username),
			Owner:     registry.Normalize(req.Owner),
			Timestamp: req.Timestamp,
			Metadata:  req.Metadata,
		}
		if clock != nil {
			rec.Timestamp = clock()
		} else if rec.Timestamp == 0 {
			rec.Timestamp = registry.NowMillis()
		}
		tags := req.Tags
		if len(tags) == 0 || clock != nil {
			tags = registry.RecordTags(rec)
		}

		stored, err := rs.Store(rec, tags)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, regclient.UploadResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, regclient.UploadResponse{
			Success:   true,
			ID:        stored.ID,
			Timestamp: stored.Timestamp,
			Username:  stored.Username,
			Owner:     stored.Owner,
		})
	}
}
