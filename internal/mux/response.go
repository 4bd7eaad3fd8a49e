package mux

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// errorResponse is the body of every failed HTTP request
type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

// writeJSONError reports err to the caller
// Server errors are logged and replaced with their status text.
func writeJSONError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	res := errorResponse{
		Message:    http.StatusText(statusCode),
		StatusCode: statusCode,
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":       r.URL.Path,
			"statusCode": statusCode,
		}).Error("request failed")
	case err != nil:
		res.Message = err.Error()
	}

	writeJSON(w, statusCode, res)
}
