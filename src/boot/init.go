package boot

import (
	"log"
	"stowage/src/common"
	"stowage/src/db"
	"stowage/src/lib"
	"stowage/src/models"
	"stowage/src/notify"
	"stowage/src/utils"
	"time"

	"gorm.io/gorm"
)

const staleSweepInterval = 1 * time.Hour

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
		&models.Reservation{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	go lib.KafkaCreateTopics("reservation-events", "emails")
	common.KafkaConsumers()
}

// InitScheduler starts the background scheduler with the recurring sweep
// that declines pending reservations whose start date has lapsed.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	notifier := notify.NewDispatcher()
	jid, err := lib.CreateCronJob(func() {
		utils.ExpireStaleReservations(notifier)
	}, staleSweepInterval)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", *jid)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
