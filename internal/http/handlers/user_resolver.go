package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
	"github.com/yungbote/codelearn-backend/internal/platform/ctxutil"
)

// UserResolver decides whose view a request gets: an explicit userId, then the
// bearer token's user, then (for reads) the configured placeholder learner.
type UserResolver struct {
	DefaultUserID uuid.UUID
}

// Resolve returns nil when nobody could be resolved.
func (r UserResolver) Resolve(c *gin.Context, explicit string, allowDefault bool) (*uuid.UUID, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		id, err := uuid.Parse(s)
		if err != nil || id == uuid.Nil {
			return nil, apierr.Wrap(apierr.ErrInvalidArgument, "invalid_user_id", "invalid userId")
		}
		return &id, nil
	}
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		return &id, nil
	}
	if allowDefault && r.DefaultUserID != uuid.Nil {
		id := r.DefaultUserID
		return &id, nil
	}
	return nil, nil
}
