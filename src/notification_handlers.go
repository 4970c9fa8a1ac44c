package main

import (
	"net/http"
	"stowage/src/db"
	"stowage/src/models"
	"stowage/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			notifications := make([]models.Notification, 0)
			gdb := db.GetDb()
			err := gdb.
				Where(&models.Notification{UserID: userId}).
				Order("created_at DESC").
				Limit(50).
				Find(&notifications).
				Error
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		}).
		PATCH("/notifications/:id/read", func(ctx *gin.Context) {
			var params struct {
				ID string `uri:"id" binding:"required,uuid"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			id, _ := uuid.Parse(params.ID)
			userId := ctx.GetUint("id")
			gdb := db.GetDb()
			res := gdb.
				Model(&models.Notification{}).
				Where(&models.Notification{ID: id, UserID: userId}).
				Update("status", types.NOTIFICATION_READ)
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
