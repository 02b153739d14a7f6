package util

import (
	"net/http"
	"strconv"
)

// ReqParamInt returns the integer value of a query parameter, or def if the
// parameter is missing or not an integer
func ReqParamInt(r *http.Request, key string, def int) int {
	i, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return def
	}
	return i
}
