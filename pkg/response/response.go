package response

import (
	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// The browser client consumes fixed body shapes ({"token","user"}, {"user"},
// {"reply"}, {"message"}), so responses are written as-is rather than wrapped
// in an envelope. The request id assigned by middleware is echoed as a header
// to keep client reports correlatable with server logs.

// JSON writes a success payload.
func JSON(c *gin.Context, status int, payload any) {
	echoRequestID(c)
	c.JSON(status, payload)
}

// Err writes the uniform error body {"message": ...}.
func Err(c *gin.Context, status int, message string) {
	echoRequestID(c)
	c.JSON(status, gin.H{"message": message})
}

// ErrDetails writes an error body carrying a field→problem map, used for
// request validation failures.
func ErrDetails(c *gin.Context, status int, message string, details any) {
	echoRequestID(c)
	c.JSON(status, gin.H{"message": message, "details": details})
}

// AbortErr writes the error body and stops the handler chain. Middleware use
// this for terminal rejections.
func AbortErr(c *gin.Context, status int, message string) {
	echoRequestID(c)
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func echoRequestID(c *gin.Context) {
	if id := c.GetString("request_id"); id != "" {
		c.Header(requestIDHeader, id)
	}
}
