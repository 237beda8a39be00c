package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
)

// NotificationHandler handles in-app inbox HTTP requests
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

// List retrieves the caller's notifications
// GET /api/v1/notifications?page&page_size&unread_only - Authenticated
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	pageSize := getIntQueryParam(r, "page_size", 20)
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread_only"))

	list, err := h.notificationService.GetNotifications(r.Context(), userID, page, pageSize, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if list.PageSize > 0 {
		totalPages = (list.Total + list.PageSize - 1) / list.PageSize
	}
	response.SuccessWithMeta(w, list.Notifications, &response.Meta{
		Page:       list.Page,
		Limit:      list.PageSize,
		TotalItems: int64(list.Total),
		TotalPages: totalPages,
	})
}

// UnreadCount reports how many notifications are unread
// GET /api/v1/notifications/unread-count - Authenticated
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	count, err := h.notificationService.GetUnreadCount(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead marks the listed notifications as read
// POST /api/v1/notifications/mark-read - Authenticated
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req notification.MarkAsReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	if len(req.NotificationIDs) == 0 {
		response.BadRequest(w, "notification_ids is required", nil)
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

// MarkAllAsRead marks every notification of the caller as read
// POST /api/v1/notifications/mark-all-read - Authenticated
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.notificationService.MarkAllAsRead(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

// Delete removes one notification owned by the caller
// DELETE /api/v1/notifications/{id} - Authenticated
func (h *notificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "notification ID is required", nil)
		return
	}

	if err := h.notificationService.Delete(r.Context(), userID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification deleted", nil)
}
