package response

import (
	"github.com/gin-gonic/gin"
)

type ErrorEnvelope struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func RespondError(c *gin.Context, status int, msg string, details []string) {
	c.JSON(status, ErrorEnvelope{Error: msg, Details: details})
}
