package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/entities"
)

// NotificationsController lists the page banners that have not expired yet.
type NotificationsController struct {
	notifier Notifier
}

func NewNotificationsController(notifier Notifier) *NotificationsController {
	return &NotificationsController{notifier: notifier}
}

// List handles GET /api/notifications.
func (nc *NotificationsController) List(c *gin.Context) {
	notifications := []entities.Notification{}
	if nc.notifier != nil {
		notifications = append(notifications, nc.notifier.Active()...)
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
