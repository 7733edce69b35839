package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/opsdesk/ticketera/api"
	"github.com/opsdesk/ticketera/internal/handler"
)

const pathSwagger = "/swagger"

func New(h *handler.Handler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	v1.POST("/login", h.Login)

	authed := v1.Group("")
	authed.Use(h.RequireSession())
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/session", h.CurrentSession)
		authed.POST("/navigate", h.Navigate)
		authed.GET("/catalog/origins", h.Origins)
		authed.GET("/catalog/origins/:origin", h.Origin)
		authed.GET("/draft", h.GetDraft)
		authed.PATCH("/draft", h.PatchDraft)
		authed.POST("/draft/reset", h.ResetDraft)
		authed.POST("/tickets", h.CreateTicket)
		authed.GET("/tickets", h.ListTickets)
	}

	return r
}
