package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agroio.app/models"
	"agroio.app/plan"
)

const userContextKey = "currentUser"

// requireUser restores the session named by the Authorization header and
// aborts with 401 when the token is missing, unknown or expired.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
			return
		}

		user, err := s.userService.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid or expired session"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// requireView enforces the plan tier a view demands. Runs after requireUser.
func (s *Server) requireView(view plan.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
			return
		}

		if !plan.CanAccess(view, user.Plan) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "current plan does not include this feature"})
			return
		}

		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
