package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/raddaran/gin"
	"github.com/bobinette/raddaran/log"
)

func TestStart(t *testing.T) {
	srv := gin.New("test", log.Discard())

	session, err := Start(srv, Configuration{ShareURL: "http://localhost/share"}, log.Discard())
	require.NoError(t, err)
	defer session.Close()

	for _, path := range []string{"/raddaran/session", "/raddaran/templates", "/raddaran/papers"} {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/raddaran/session", nil))
	assert.Contains(t, w.Body.String(), session.ID)
}
