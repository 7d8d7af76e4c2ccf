package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bobinette/raddaran/errors"
)

// encodeError writes an error as an HTTP response. It handles the status code
// contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := http.StatusInternalServerError
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

// param returns the value of the url parameter name. The server stores the
// parameters in the request context under "params".
func param(ctx context.Context, name string) string {
	params, ok := ctx.Value("params").(map[string]string)
	if !ok {
		return ""
	}
	return params[name]
}

func paperID(ctx context.Context) (int, error) {
	v := param(ctx, "id")
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid parameter: id", errors.BadRequest(), errors.WithCause(err))
	}
	return id, nil
}
