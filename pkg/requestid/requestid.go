// Package requestid holds the request id keys shared by the middleware that
// assigns them and the code that logs them.
package requestid

import "github.com/gin-gonic/gin"

const (
	// Header carries the id on requests and responses.
	Header = "X-Request-ID"
	// ContextKey stores the id on the gin context.
	ContextKey = "request_id"
)

// Set stores id on c and echoes it in the response header.
func Set(c *gin.Context, id string) {
	c.Set(ContextKey, id)
	c.Header(Header, id)
}

// Get returns the id stored on c, or "" when none was assigned.
func Get(c *gin.Context) string {
	return c.GetString(ContextKey)
}
