package auth

import (
	"net/http"

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

// Auth is the interface for the registration/login service.
type Auth interface {
	Register(c *gin.Context, req RegisterRequest) (*users.User, string, error)
	Login(c *gin.Context, req LoginRequest) (*users.User, string, error)
	Me(c *gin.Context) (*users.User, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Auth

	// Public routes: register, login, logout.
	PublicRouter Router

	// Authenticated routes: the current-identity endpoint.
	AuthRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	pub := opts.PublicRouter
	pub.POST("/register", h.registerHandler)
	pub.POST("/login", h.loginHandler)
	pub.POST("/logout", h.logoutHandler)

	opts.AuthRouter.GET("/me", h.meHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) registerHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	user, tok, err := s.Service.Register(c, req)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": tok})
}

func (s *httpHandler) loginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	user, tok, err := s.Service.Login(c, req)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": tok})
}

// logoutHandler is stateless: tokens stay valid until they expire, the
// client just discards its copy.
func (s *httpHandler) logoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) meHandler(c *gin.Context) {
	user, err := s.Service.Me(c)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
