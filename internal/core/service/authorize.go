package service

import (
	"errors"

	"github.com/vidshare/platform/internal/core/authz"
	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/pkg/metrics"
)

// authorize runs the authorization engine and counts denials.
func authorize(actor *domain.Identity, action authz.Action, res authz.Resource) error {
	err := authz.Authorize(actor, action, res)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.AuthorizationDenialsTotal.WithLabelValues(string(action), "unauthenticated").Inc()
	default:
		metrics.AuthorizationDenialsTotal.WithLabelValues(string(action), "forbidden").Inc()
	}
	return err
}
