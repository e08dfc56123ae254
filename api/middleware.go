package api

import (
	"net/http"

	"github.com/Harshit1991/gymbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group behind a valid admin session.
// Unauthenticated callers are redirected to the login entry point rather
// than served an error page.
func RequireAdmin(authSvc auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		session, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil || session == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("user_email", session.Email)
		c.Next()
	}
}
