package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr maps err through apierr. Errors that carry no kind surface as a
// generic 500 so storage details stay out of responses.
func RespondErr(c *gin.Context, err error, fallbackCode string) {
	status := apierr.StatusOf(err)
	code := apierr.CodeOf(err, fallbackCode)
	if status == http.StatusInternalServerError && !isClassified(err) {
		RespondError(c, status, code, errInternal)
		return
	}
	RespondError(c, status, code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
