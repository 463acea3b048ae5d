package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusarena/tournament-api/pkg/apierror"
	users "github.com/campusarena/tournament-api/repos/users"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Admin is the interface for the user administration service.
type Admin interface {
	ListUsers(c *gin.Context) ([]*users.User, error)
	SetActive(c *gin.Context, id string, active bool) error
	Restrict(c *gin.Context, id string, until time.Time) error
	Warn(c *gin.Context, id, message string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

type restrictRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

type warnRequest struct {
	Message string `json:"message" binding:"required"`
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/users", h.listUsersHandler)
	r.POST("/users/:id/deactivate", h.deactivateHandler)
	r.POST("/users/:id/reactivate", h.reactivateHandler)
	r.POST("/users/:id/restrict", h.restrictHandler)
	r.POST("/users/:id/warn", h.warnHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) listUsersHandler(c *gin.Context) {
	list, err := s.Service.ListUsers(c)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": list})
}

func (s *httpHandler) deactivateHandler(c *gin.Context) {
	if err := s.Service.SetActive(c, c.Param("id"), false); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) reactivateHandler(c *gin.Context) {
	if err := s.Service.SetActive(c, c.Param("id"), true); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) restrictHandler(c *gin.Context) {
	var req restrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	if err := s.Service.Restrict(c, c.Param("id"), req.Until); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) warnHandler(c *gin.Context) {
	var req warnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	if err := s.Service.Warn(c, c.Param("id"), req.Message); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
