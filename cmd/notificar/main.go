// Command notificar scans driver licenses and mails everyone whose carta
// de condução has expired or expires within the next 30 days. Meant to be
// run from cron; it is read-only and safe to re-run.
package main

import (
	"log"
	"os"
	"time"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/logger"
	"github.com/Helton-Amalique/school-bus-app-api/internal/notify"
)

func main() {
	logger.Setup()
	config.InitDB()

	var mailer notify.Mailer
	if os.Getenv("SENDGRID_API_KEY") != "" {
		mailer = notify.NewSendgridMailer()
	} else {
		mailer = &notify.ConsoleMailer{}
	}

	if err := notify.NotificarCartas(config.DB, mailer, time.Now()); err != nil {
		log.Fatalf("notification run failed: %v", err)
	}
	log.Println("✅ Notificações enviadas para motoristas com carta expirada ou próxima de expirar.")
}
