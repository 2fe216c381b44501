package authorization

import (
	"github.com/gin-gonic/gin"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("user_role")
		if userRole != string(RoleAdmin) {
			c.JSON(403, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSupervisor allows supervisor or admin roles through.
func RequireSupervisor() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString("user_role"))
		if !role.CanOverride() {
			c.JSON(403, gin.H{
				"error": "supervisor access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsAdmin() {
		return true
	}
	return userID == resourceOwnerID
}
