package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MessageBody is the JSON shape of requests that only acknowledge.
type MessageBody struct {
	Message string `json:"message"`
}

func Error(ctx *gin.Context, status int, message string, details any) {
	ctx.AbortWithStatusJSON(status, ErrorBody{Message: message, Details: details})
}

func Message(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, MessageBody{Message: message})
}

// JSON writes body as is. Kept so handlers never call ctx.JSON directly.
func JSON(ctx *gin.Context, status int, body any) {
	ctx.JSON(status, body)
}
