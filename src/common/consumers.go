package common

import (
	"log"
	"os"
	"stowage/src/lib"

	"github.com/tidwall/gjson"
)

func KafkaConsumers() {
	go EmailsConsumer()
	go ReservationEventsConsumer()
}

// EmailsConsumer drains the email queue and delivers through SMTP. Messages
// are produced by the mailer when EMAIL_DIRECT is off.
func EmailsConsumer() {
	topic := os.Getenv("EMAIL_QUEUE")
	if topic == "" {
		topic = "emails"
	}
	lib.KafkaConsumeTopic("emails-consumer", topic, func(body string) {
		if !gjson.Valid(body) {
			log.Printf("[%s]: Received invalid json body. Aborting", topic)
			return
		}
		to := make([]string, 0)
		for _, addr := range gjson.Get(body, "to").Array() {
			to = append(to, addr.String())
		}
		if len(to) == 0 {
			log.Printf("[%s]: Message has no recipient. Aborting", topic)
			return
		}
		err := lib.SendMail(&lib.SendMailInput{
			From:     gjson.Get(body, "from").String(),
			FromName: gjson.Get(body, "from-name").String(),
			To:       to,
			Subject:  gjson.Get(body, "subject").String(),
			Body:     gjson.Get(body, "body").String(),
			Html:     gjson.Get(body, "html").Bool(),
		})
		if err != nil {
			log.Printf("[%s]: Error sending mail to %s: %s", topic, to[0], err.Error())
		}
	})
}

// ReservationEventsConsumer tails the reservation event stream. Nothing
// downstream consumes it in-process yet, so this is an audit log.
func ReservationEventsConsumer() {
	topic := "reservation-events"
	lib.KafkaConsumeTopic("reservation-events-consumer", topic, func(body string) {
		if !gjson.Valid(body) {
			log.Printf("[%s]: Received invalid json body. Aborting", topic)
			return
		}
		event := gjson.Get(body, "event").String()
		id := gjson.Get(body, "reservation_id").Uint()
		log.Printf("[%s]: %s reservation=%d", topic, event, id)
	})
}
