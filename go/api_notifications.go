package marketplaceserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	notificationmapper "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/adapters/http/mapper"
	notificationports "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

type NotificationAPI struct {
	service notificationports.Service
}

func NewNotificationAPI(service notificationports.Service) NotificationAPI {
	return NotificationAPI{service: service}
}

// Get /api/notifications
func (api *NotificationAPI) List(c *gin.Context) {
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	principal, _ := PrincipalFrom(c)
	list, err := api.service.ListForUser(c.Request.Context(), principal.UserID, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notificationmapper.FromDomainNotifications(list))
}

// Patch /api/notifications/:id/read
func (api *NotificationAPI) MarkRead(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	n, err := api.service.MarkRead(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notificationmapper.FromDomainNotification(n))
}
