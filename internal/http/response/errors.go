package response

import (
	"errors"

	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
)

var errInternal = errors.New("internal server error")

func isClassified(err error) bool {
	var ae *apierr.Error
	return errors.As(err, &ae)
}
