package tournaments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusarena/tournament-api/pkg/apierror"
	"github.com/campusarena/tournament-api/pkg/auth"
	"github.com/campusarena/tournament-api/pkg/roles"
	repo "github.com/campusarena/tournament-api/repos/tournaments"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Tournaments is the interface for the tournament lifecycle service.
type Tournaments interface {
	Create(c *gin.Context, req CreateRequest) (*repo.Tournament, error)
	List(c *gin.Context, filter repo.Filter) ([]*repo.Tournament, error)
	Get(c *gin.Context, id string) (*repo.Tournament, error)
	GetByInviteCode(c *gin.Context, code string) (*repo.Tournament, error)
	Update(c *gin.Context, id string, req UpdateRequest) (*repo.Tournament, error)
	Delete(c *gin.Context, id string) error
	Submit(c *gin.Context, id string) (*repo.Tournament, error)
	Approve(c *gin.Context, id string) (*repo.Tournament, error)
	Reject(c *gin.Context, id, reason string) (*repo.Tournament, error)
	CloseRegistration(c *gin.Context, id string) (*repo.Tournament, error)
	Start(c *gin.Context, id string) (*repo.Tournament, error)
	Complete(c *gin.Context, id string) (*repo.Tournament, error)
	Cancel(c *gin.Context, id string) (*repo.Tournament, error)
	RegisterTeam(c *gin.Context, id string, req RegisterTeamRequest) error
	RegisterSolo(c *gin.Context, id string) error
	ApproveTeamRegistration(c *gin.Context, id, teamName string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Tournaments

	// Public routes: anyone may read tournaments.
	PublicRouter Router

	// Authenticated routes: everything that mutates.
	AuthRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	pub := opts.PublicRouter
	pub.GET("", h.listHandler)
	pub.GET("/invite/:code", h.inviteHandler)
	pub.GET("/:id", h.getHandler)

	r := opts.AuthRouter
	r.POST("", auth.RequireCapability(roles.CreateTournaments), h.createHandler)
	r.PUT("/:id", h.updateHandler)
	r.DELETE("/:id", h.deleteHandler)
	r.POST("/:id/submit", h.submitHandler)
	r.POST("/:id/approve", auth.RequireCapability(roles.ApproveTournaments), h.approveHandler)
	r.POST("/:id/reject", auth.RequireCapability(roles.ApproveTournaments), h.rejectHandler)
	r.POST("/:id/close-registration", h.closeRegistrationHandler)
	r.POST("/:id/start", h.startHandler)
	r.POST("/:id/complete", h.completeHandler)
	r.POST("/:id/cancel", h.cancelHandler)
	r.POST("/:id/teams", h.registerTeamHandler)
	r.POST("/:id/solo", h.registerSoloHandler)
	r.POST("/:id/teams/:teamName/approve", h.approveTeamHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) listHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := repo.Filter{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		Department: c.Query("department"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	list, err := s.Service.List(c, filter)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tournaments": list})
}

func (s *httpHandler) getHandler(c *gin.Context) {
	tournament, err := s.Service.Get(c, c.Param("id"))
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tournament": tournament})
}

func (s *httpHandler) inviteHandler(c *gin.Context) {
	tournament, err := s.Service.GetByInviteCode(c, c.Param("code"))
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tournament": tournament})
}

func (s *httpHandler) createHandler(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	tournament, err := s.Service.Create(c, req)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "tournament": tournament})
}

func (s *httpHandler) updateHandler(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	tournament, err := s.Service.Update(c, c.Param("id"), req)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tournament": tournament})
}

func (s *httpHandler) deleteHandler(c *gin.Context) {
	if err := s.Service.Delete(c, c.Param("id")); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) submitHandler(c *gin.Context) {
	s.respondTransition(c, s.Service.Submit)
}

func (s *httpHandler) approveHandler(c *gin.Context) {
	s.respondTransition(c, s.Service.Approve)
}

func (s *httpHandler) rejectHandler(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	tournament, err := s.Service.Reject(c, c.Param("id"), req.Reason)
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tournament": tournament})
}

func (s *httpHandler) closeRegistrationHandler(c *gin.Context) {
	s.respondTransition(c, s.Service.CloseRegistration)
}

func (s *httpHandler) startHandler(c *gin.Context) {
	s.respondTransition(c, s.Service.Start)
}

func (s *httpHandler) completeHandler(c *gin.Context) {
	s.respondTransition(c, s.Service.Complete)
}

func (s *httpHandler) cancelHandler(c *gin.Context) {
	s.respondTransition(c, s.Service.Cancel)
}

func (s *httpHandler) registerTeamHandler(c *gin.Context) {
	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.JSON(c, apierror.FromBinding(err))
		return
	}

	if err := s.Service.RegisterTeam(c, c.Param("id"), req); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (s *httpHandler) registerSoloHandler(c *gin.Context) {
	if err := s.Service.RegisterSolo(c, c.Param("id")); err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (s *httpHandler) approveTeamHandler(c *gin.Context) {
	err := s.Service.ApproveTeamRegistration(c, c.Param("id"), c.Param("teamName"))
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) respondTransition(c *gin.Context, fn func(*gin.Context, string) (*repo.Tournament, error)) {
	tournament, err := fn(c, c.Param("id"))
	if err != nil {
		apierror.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tournament": tournament})
}
