package requestid

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.Empty(t, Get(c))

	Set(c, "4b1c2f9e-7c59-4b0e-9a55-0d7f3c1e2a10")
	assert.Equal(t, "4b1c2f9e-7c59-4b0e-9a55-0d7f3c1e2a10", Get(c))
	assert.Equal(t, "4b1c2f9e-7c59-4b0e-9a55-0d7f3c1e2a10", w.Header().Get(Header))
}
