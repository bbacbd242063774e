package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/ngtrphuong/ioe/internal/application/inventory"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/pkg/config"
	"github.com/ngtrphuong/ioe/pkg/logger"
)

// Verificar en tiempo de compilación que Mailer implementa LowStockNotifier.
var _ inventory.LowStockNotifier = (*Mailer)(nil)

// Mailer envía alertas de stock bajo a los encargados por SMTP. Sin transporte
// configurado la alerta queda solo en el log; el envío nunca devuelve error al
// flujo de negocio.
type Mailer struct {
	cfg config.MailConfig
	log *logger.Logger
}

// NewMailer construye el notificador.
func NewMailer(cfg config.MailConfig, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// NotifyLowStock registra la alerta y, si hay transporte, envía el correo a los
// encargados. Se llama después del commit del movimiento que dejó el stock en o
// bajo el umbral.
func (m *Mailer) NotifyLowStock(product *entity.Product, inv *entity.Inventory) {
	m.log.Warn().
		Str("product_id", product.ID).
		Str("product_name", product.Name).
		Int64("quantity", inv.Quantity).
		Int64("warning_level", inv.WarningLevel).
		Msg("stock bajo")

	if !m.cfg.Enabled() {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.Managers...)
	msg.SetHeader("Subject", fmt.Sprintf("Alerta de stock bajo: %s", product.Name))
	msg.SetBody("text/plain", fmt.Sprintf(
		"El producto %s (código %s) quedó con %d unidades; el umbral de reposición es %d.",
		product.Name, product.Barcode, inv.Quantity, inv.WarningLevel,
	))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo enviar la alerta de stock bajo")
	}
}
