package http

import (
	"net/http"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	ListLogs(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// ListLogs implements NotificationHandler.
func (h *NotificationHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter := notification.ListFilter{
		Recipient: r.URL.Query().Get("recipient"),
		Type:      r.URL.Query().Get("type"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}

	resp, err := h.notificationService.ListLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
