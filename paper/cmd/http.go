package cmd

import (
	"github.com/bobinette/raddaran/log"

	"github.com/bobinette/raddaran/paper/http"
	"github.com/bobinette/raddaran/paper/services"
)

type Configuration struct {
	ShareURL  string `toml:"share_url"`
	MaxUpload int64  `toml:"max_upload"`
}

// Start opens a new session and registers its endpoints on srv. The caller
// closes the session when it ends.
func Start(srv http.Server, conf Configuration, logger log.Logger) (*services.Session, error) {
	session, err := services.NewSession(services.SessionConfig{ShareURL: conf.ShareURL}, logger)
	if err != nil {
		return nil, err
	}

	// Register endpoints
	http.RegisterPaperEndpoints(srv, session.Papers, conf.MaxUpload)
	http.RegisterTemplateEndpoints(srv, session.Templates)
	http.RegisterSessionEndpoints(srv, session)

	return session, nil
}
