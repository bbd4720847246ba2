package dashboard

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	dash := r.Group("/dashboard")
	dash.Use(middleware.AuthMiddleware())
	{
		dash.GET("/employee", middleware.RBACAuthorize(rbacService, "dashboard", "read"), handler.GetEmployeeStats)
		dash.GET("/manager", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetManagerStats)
	}
}
