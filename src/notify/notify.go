package notify

import (
	"fmt"
	"log"
	"stowage/src/db"
	"stowage/src/lib"
	"stowage/src/lib/mailer"
	"stowage/src/models"
	"stowage/src/models/scopes"
	"stowage/src/types"
)

const reservationEventsTopic = "reservation-events"

// Dispatcher fans a reservation event out to the three delivery channels:
// a notification row for the in-app feed, a kafka event for downstream
// consumers, and an email to the affected party.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) NotifyHostOfNewReservation(r *models.Reservation) error {
	title := "New reservation request"
	body := fmt.Sprintf("You have a new reservation request for %.2f units of space", r.SpaceRequested)
	if r.Listing != nil {
		body = fmt.Sprintf("You have a new reservation request for %.2f units at %s", r.SpaceRequested, r.Listing.Title)
	}
	return d.dispatch(r, r.HostID, "reservation.requested", title, body)
}

func (d *Dispatcher) NotifyClientOfStatusChange(r *models.Reservation) error {
	title := fmt.Sprintf("Reservation %s", r.Status)
	body := fmt.Sprintf("Your reservation #%d is now %s", r.ID, r.Status)
	return d.dispatch(r, r.ClientID, "reservation.status_changed", title, body)
}

func (d *Dispatcher) NotifyHostOfCancellation(r *models.Reservation) error {
	title := "Reservation cancelled"
	body := fmt.Sprintf("The client has cancelled reservation #%d", r.ID)
	return d.dispatch(r, r.HostID, "reservation.cancelled", title, body)
}

func (d *Dispatcher) dispatch(r *models.Reservation, userID uint, event, title, body string) error {
	refBody := types.JSONB{
		"reservation_id": r.ID,
		"listing_id":     r.ListingID,
		"status":         string(r.Status),
		"event":          event,
	}
	notification := models.Notification{
		UserID:         userID,
		ReferenceType:  "reservation",
		ReferenceValue: fmt.Sprintf("%d", r.ID),
		Title:          title,
		Description:    &body,
		ReferenceBody:  &refBody,
	}
	gdb := db.GetDb()
	if err := gdb.Create(&notification).Error; err != nil {
		return err
	}

	go func() {
		err := lib.KafkaProduceMessage("notify", reservationEventsTopic, map[string]any{
			"event":          event,
			"reservation_id": r.ID,
			"listing_id":     r.ListingID,
			"user_id":        userID,
			"status":         string(r.Status),
		})
		if err != nil {
			log.Printf("Error producing %s event: %s\n", event, err.Error())
		}
	}()

	var user models.User
	if err := gdb.Scopes(scopes.WithID(userID)).First(&user).Error; err != nil {
		return err
	}
	err := mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{user.Email},
		Subject: title,
		Body:    body,
	})
	if err != nil {
		log.Printf("Error queueing mail for %s: %s\n", user.Email, err.Error())
	}
	return nil
}
