package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"elstore/internal/model"
)

// Mailer is the outbound email capability. Delivery is best effort; callers
// treat any error as "not delivered".
type Mailer interface {
	Send(to, subject, htmlBody, textBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

type Message struct {
	Subject string
	HTML    string
	Text    string
}

// StatusMessage renders the buyer-facing message for an order's current
// status.
func StatusMessage(order model.Order) Message {
	plan := order.Plan
	if plan == "" {
		plan = "produk"
	}

	switch order.Status {
	case model.StatusVerified:
		return Message{
			Subject: "Pesanan Terverifikasi — Akses Anda Siap",
			HTML: fmt.Sprintf(`<h2>Pesanan Terverifikasi ✅</h2>
<p>Terima kasih! Pembayaran untuk paket <b>%s</b> telah kami terima dan verifikasi.</p>
<p>Tim kami akan mengirim akses e-book/kelas ke email ini. Jika belum menerima dalam 5 menit, periksa folder spam/promotions.</p>
<p>Butuh bantuan? Balas email ini.</p>`, plan),
			Text: fmt.Sprintf("Pesanan Terverifikasi. Terima kasih! Pembayaran Anda untuk paket %s telah kami terima dan verifikasi. Cek email untuk akses.", plan),
		}
	case model.StatusRejected:
		return Message{
			Subject: "Verifikasi Gagal — Perlu Tindakan",
			HTML: fmt.Sprintf(`<h2>Verifikasi Gagal ❌</h2>
<p>Maaf, kami belum bisa memverifikasi pembayaran Anda untuk paket <b>%s</b>.</p>
<p>Silakan balas email ini dengan bukti pembayaran yang jelas atau hubungi CS.</p>`, plan),
			Text: "Verifikasi gagal. Kami belum bisa memverifikasi pembayaran Anda.",
		}
	default:
		return Message{
			Subject: "Status Pesanan Anda",
			HTML:    fmt.Sprintf("<p>Status pesanan Anda: <b>%s</b> untuk paket %s.</p>", order.Status, plan),
			Text:    fmt.Sprintf("Status pesanan Anda: %s untuk paket %s.", order.Status, plan),
		}
	}
}
