package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/irysname/irysname/registry"
	"github.com/irysname/irysname/registry/regclient"
)

type graphQLError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newGraphQLError(msg string) graphQLError {
	e := graphQLError{}
	e.Errors = append(e.Errors, struct {
		Message string `json:"message"`
	}{msg})
	return e
}

// NewGraphQLHandler answers transactions queries. Only the query variables
// are interpreted; the query document is assumed to be
// regclient.TransactionsQuery
func NewGraphQLHandler(rs *registry.MemRecords, unavailable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if unavailable {
			writeJSON(w, http.StatusServiceUnavailable, newGraphQLError("service unavailable"))
			return
		}
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, newGraphQLError("method not allowed"))
			return
		}

		req := regclient.GraphQLRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, newGraphQLError(err.Error()))
			return
		}

		var filter []registry.Tag
		for _, tf := range req.Variables.Tags {
			if len(tf.Values) == 0 {
				continue
			}
			filter = append(filter, registry.Tag{Name: tf.Name, Value: tf.Values[0]})
		}

		res := regclient.GraphQLResponse{}
		for _, rec := range rs.Query(filter, req.Variables.First) {
			edge := struct {
				Node regclient.Node `json:"node"`
			}{
				Node: regclient.Node{
					ID:        rec.ID,
					Timestamp: rec.Timestamp,
					Tags:      registry.RecordTags(rec),
				},
			}
			res.Data.Transactions.Edges = append(res.Data.Transactions.Edges, edge)
		}
		writeJSON(w, http.StatusOK, res)
	}
}
