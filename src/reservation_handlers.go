package main

import (
	"errors"
	"net/http"
	"stowage/src/config"
	"stowage/src/db"
	"stowage/src/models"
	"stowage/src/reservations"
	"stowage/src/types"
	"stowage/src/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// abortWithReservationError maps domain error codes onto HTTP statuses.
// Anything without a code is treated as a bad request rather than leaked
// as a 500.
func abortWithReservationError(ctx *gin.Context, err error) {
	var rerr *reservations.Error
	if errors.As(err, &rerr) {
		status := http.StatusBadRequest
		switch rerr.Code {
		case reservations.CodeNotFound:
			status = http.StatusNotFound
		case reservations.CodeForbidden:
			status = http.StatusForbidden
		case reservations.CodeConflict:
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": rerr.Message})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			start, _ := time.Parse(config.DATE_PARSE_FORMAT, body.StartDate)
			end, _ := time.Parse(config.DATE_PARSE_FORMAT, body.EndDate)
			reservation, err := reservationsSvc.Create(ctx, reservations.CreateParams{
				ListingID:      body.ListingID,
				ClientID:       ctx.GetUint("id"),
				SpaceRequested: body.SpaceRequested,
				StartDate:      start,
				EndDate:        end,
				Message:        body.Message,
				Items:          body.Items,
			})
			if err != nil {
				abortWithReservationError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": reservation})
		}).
		GET("/reservations", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			asHost := false
			if hostQuery := ctx.Query("host"); hostQuery != "" {
				parsed, err := strconv.ParseBool(hostQuery)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				asHost = parsed
			}
			var data []models.Reservation
			var err error
			if asHost {
				data, err = utils.GetHostReservations(userId)
			} else {
				data, err = utils.GetOwnReservations(userId)
			}
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			var reservation models.Reservation
			gdb := db.GetDb()
			err := gdb.
				Preload("Listing").
				Preload("Client").
				Where(&models.Reservation{ID: params.ID}).
				First(&reservation).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
				return
			}
			if reservation.HostID != userId && reservation.ClientID != userId {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "user is not a party to this reservation"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		PATCH("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.Status == nil && body.Rated == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
				return
			}
			userId := ctx.GetUint("id")
			reservation, err := reservationsSvc.UpdateStatus(ctx, params.ID, userId, body.Status, body.Rated)
			if err != nil {
				abortWithReservationError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/reservations/:id/clear", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			if err := utils.ClearReservation(params.ID, userId); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
