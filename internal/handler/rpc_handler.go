package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/internal/service"
	"github.com/weiawesome/amigos-chat/pkg/log"
	"github.com/weiawesome/amigos-chat/pkg/response"
	"github.com/weiawesome/amigos-chat/pkg/validation"
)

// queryInputParam carries a query's JSON input on GET requests.
const queryInputParam = "input"

// Pinger checks a backing store.
type Pinger func(ctx context.Context) error

// Handler serves the chat procedures over HTTP under /trpc/<procedure>.
// Mutations accept a POST JSON body; queries accept GET with ?input=<json>
// or POST.
type Handler struct {
	userService    service.UserService
	groupService   service.GroupService
	messageService service.MessageService
	ping           Pinger
	clock          func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	userService service.UserService,
	groupService service.GroupService,
	messageService service.MessageService,
	ping Pinger,
) *Handler {
	validation.Init()
	return &Handler{
		userService:    userService,
		groupService:   groupService,
		messageService: messageService,
		ping:           ping,
		clock:          time.Now,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	rpc := r.Group("/trpc")
	{
		mutation(rpc, "registerUser", h.RegisterUser)
		mutation(rpc, "createGroup", h.CreateGroup)
		mutation(rpc, "joinGroup", h.JoinGroup)
		mutation(rpc, "sendMessage", h.SendMessage)

		query(rpc, "healthcheck", h.Healthcheck)
		query(rpc, "getUser", h.GetUser)
		query(rpc, "getAllUsers", h.GetAllUsers)
		query(rpc, "getUserGroups", h.GetUserGroups)
		query(rpc, "getAllGroups", h.GetAllGroups)
		query(rpc, "getMessages", h.GetMessages)
	}
}

func mutation(rg *gin.RouterGroup, name string, fn gin.HandlerFunc) {
	rg.POST("/"+name, withProcedure(name), fn)
}

func query(rg *gin.RouterGroup, name string, fn gin.HandlerFunc) {
	rg.GET("/"+name, withProcedure(name), fn)
	rg.POST("/"+name, withProcedure(name), fn)
}

// withProcedure tags the request logger with the procedure name.
func withProcedure(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(log.WithProcedure(c.Request.Context(), name))
		c.Next()
	}
}

// bindInput decodes and validates the procedure input into req.
func bindInput(c *gin.Context, req any) bool {
	var err error
	if c.Request.Method == http.MethodGet {
		err = binding.JSON.BindBody([]byte(c.Query(queryInputParam)), req)
	} else {
		err = c.ShouldBindJSON(req)
	}
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("invalid procedure input")
		response.BadRequest(c, validation.Message(err))
		return false
	}
	return true
}

// writeError maps service error categories onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		response.Conflict(c, err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("procedure failed")
		response.InternalError(c, err.Error())
	}
}

// Health reports process liveness and database reachability.
func (h *Handler) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			l := log.Ctx(c.Request.Context())
			l.Error().Err(err).Msg("database ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Healthcheck handles the healthcheck procedure.
func (h *Handler) Healthcheck(c *gin.Context) {
	response.Success(c, domain.NewHealthStatus(h.clock()))
}

// RegisterUser handles user registration.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req domain.RegisterUserRequest
	if !bindInput(c, &req) {
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, user)
}

// GetUser returns the user or a null result.
func (h *Handler) GetUser(c *gin.Context) {
	var req domain.GetUserRequest
	if !bindInput(c, &req) {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), req.WalletAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, user)
}

// GetAllUsers lists users, newest first.
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, users)
}

// CreateGroup handles group creation.
func (h *Handler) CreateGroup(c *gin.Context) {
	var req domain.CreateGroupRequest
	if !bindInput(c, &req) {
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, group)
}

// JoinGroup handles group membership.
func (h *Handler) JoinGroup(c *gin.Context) {
	var req domain.JoinGroupRequest
	if !bindInput(c, &req) {
		return
	}

	membership, err := h.groupService.JoinGroup(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, membership)
}

// GetUserGroups lists the groups a wallet belongs to.
func (h *Handler) GetUserGroups(c *gin.Context) {
	var req domain.GetUserGroupsRequest
	if !bindInput(c, &req) {
		return
	}

	groups, err := h.groupService.GetUserGroups(c.Request.Context(), req.UserWalletAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, groups)
}

// GetAllGroups lists groups in creation order.
func (h *Handler) GetAllGroups(c *gin.Context) {
	groups, err := h.groupService.GetAllGroups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, groups)
}

// SendMessage persists a message.
func (h *Handler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if !bindInput(c, &req) {
		return
	}

	msg, err := h.messageService.SendMessage(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, msg)
}

// GetMessages returns group or private history.
func (h *Handler) GetMessages(c *gin.Context) {
	var req domain.GetMessagesRequest
	if !bindInput(c, &req) {
		return
	}

	messages, err := h.messageService.GetMessages(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, messages)
}
