package endpoints

import (
	"context"

	"github.com/bobinette/raddaran/paper/services"
)

type SessionEndpoint struct {
	session *services.Session
}

func NewSessionEndpoint(session *services.Session) *SessionEndpoint {
	return &SessionEndpoint{
		session: session,
	}
}

func (ep *SessionEndpoint) Info(ctx context.Context, r interface{}) (interface{}, error) {
	return map[string]interface{}{
		"data": ep.session.Info(),
	}, nil
}
