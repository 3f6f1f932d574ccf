package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired пускает дальше только сессии с админ-флагом; остальных ведёт
// на форму логина, не ошибкой.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !State(c).IsAdmin {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
