package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/auth"
)

type ReminderHandler struct {
	reminders     app.ReminderUseCase
	subscriptions app.SubscriptionUseCase
}

// NewReminderHandler accepts a nil subscription use case, in which case the
// subscribe route is not registered.
func NewReminderHandler(reminders app.ReminderUseCase, subscriptions app.SubscriptionUseCase) *ReminderHandler {
	return &ReminderHandler{
		reminders:     reminders,
		subscriptions: subscriptions,
	}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)

		return
	}

	output, err := h.reminders.CreateReminder(ctx, app.CreateReminderInput{
		UserID:      auth.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusCreated, FromDTO(output))
}

func (h *ReminderHandler) ListReminders(c *gin.Context) {
	output, err := h.reminders.ListReminders(c.Request.Context(), app.ListRemindersInput{
		UserID: auth.UserID(c),
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTOs(output))
}

func (h *ReminderHandler) ListUpcoming(c *gin.Context) {
	output, err := h.reminders.ListUpcoming(c.Request.Context(), app.ListUpcomingInput{
		UserID: auth.UserID(c),
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTOs(output))
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.reminders.DeleteReminder(c.Request.Context(), app.DeleteReminderInput{
		UserID:     auth.UserID(c),
		ReminderID: id,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	if !removed {
		h.handleError(c, app.ErrNotFound)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)

		return
	}

	output, err := h.subscriptions.Subscribe(c.Request.Context(), app.SubscribeInput{
		UserID:   auth.UserID(c),
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusCreated, FromSubscriptionDTO(output))
}

func (h *ReminderHandler) bindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "request validation failed",
		"error", err,
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

func (h *ReminderHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
		})

		return
	}

	if errors.Is(err, app.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "store_unavailable",
			Message: "reminder store is unavailable, retry later",
		})

		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup, jwtSecret string) {
	authed := router.Group("", auth.JWTAuth(jwtSecret))

	reminders := authed.Group("/reminders")
	{
		reminders.POST("", h.CreateReminder)
		reminders.GET("", h.ListReminders)
		reminders.GET("/upcoming", h.ListUpcoming)
		reminders.DELETE("/:id", h.DeleteReminder)
	}

	if h.subscriptions != nil {
		authed.POST("/notifications/subscribe", h.Subscribe)
	}
}
