package notify

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
)

// JanelaAviso is how far ahead the "expiring soon" warning looks.
const JanelaAviso = 30 * 24 * time.Hour

// CartasPorExpirar partitions drivers by license validity: already
// expired, and expiring within the warning window. Valid licenses beyond
// the window appear in neither set.
func CartasPorExpirar(db *gorm.DB, hoje time.Time) (expiradas, aExpirar []models.Motorista, err error) {
	// Licenses carry date resolution only; a carta valid through today is
	// still valid.
	hoje = time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC)
	limite := hoje.Add(JanelaAviso)

	err = db.Preload("User").
		Where("validade_da_carta < ?", hoje).
		Find(&expiradas).Error
	if err != nil {
		return nil, nil, err
	}

	err = db.Preload("User").
		Where("validade_da_carta >= ? AND validade_da_carta <= ?", hoje, limite).
		Find(&aExpirar).Error
	if err != nil {
		return nil, nil, err
	}
	return expiradas, aExpirar, nil
}

// NotificarCartas mails every driver whose license has expired or is
// about to. Purely read-only over driver records; re-running it only
// re-sends the messages.
func NotificarCartas(db *gorm.DB, mailer Mailer, hoje time.Time) error {
	expiradas, aExpirar, err := CartasPorExpirar(db, hoje)
	if err != nil {
		return err
	}

	for _, motorista := range expiradas {
		body := fmt.Sprintf(
			"Prezado %s, sua carta de condução expirou em %s. Por favor, regularize sua situação o mais rápido possível.",
			motorista.User.Nome, motorista.ValidadeDaCarta.Format("2006-01-02"))
		if err := mailer.Send(motorista.User.Nome, motorista.User.Email, "Carta de Condução Expirada", body); err != nil {
			logrus.WithError(err).WithField("email", motorista.User.Email).Error("failed to notify expired license")
		}
	}
	for _, motorista := range aExpirar {
		body := fmt.Sprintf(
			"Prezado %s, sua carta de condução expira em %s. Por favor, renove sua carta o mais rápido possível.",
			motorista.User.Nome, motorista.ValidadeDaCarta.Format("2006-01-02"))
		if err := mailer.Send(motorista.User.Nome, motorista.User.Email, "Carta de Condução Próxima de Expirar", body); err != nil {
			logrus.WithError(err).WithField("email", motorista.User.Email).Error("failed to notify expiring license")
		}
	}

	logrus.WithFields(logrus.Fields{
		"expiradas": len(expiradas),
		"a_expirar": len(aExpirar),
	}).Info("license notifications sent")
	return nil
}
