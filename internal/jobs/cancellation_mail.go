// Package jobs holds the background job handlers run by the queue worker.
package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	netmail "net/mail"
	"text/template"

	"github.com/rs/zerolog"

	"booking-server/internal/appointments"
	"booking-server/internal/mail"
	"booking-server/internal/queue"
)

var cancellationTemplate = template.Must(template.New("cancellation").Parse(
	`Olá, {{.Provider}}

Houve um cancelamento de horário, confira os detalhes abaixo:

Cliente: {{.User}}
Data/hora: {{.Date}}

O horário está novamente disponível para novos agendamentos.
`))

type cancellationView struct {
	Provider string
	User     string
	Date     string
}

// CancellationMail tells a provider that one of their appointments was canceled.
type CancellationMail struct {
	sender mail.Sender
	log    zerolog.Logger
}

// NewCancellationMail creates the handler.
func NewCancellationMail(sender mail.Sender, log zerolog.Logger) *CancellationMail {
	return &CancellationMail{sender: sender, log: log}
}

// Key is the job kind this handler consumes.
func (j *CancellationMail) Key() string {
	return appointments.CancellationJobKey
}

// Handle sends the cancellation email for one job.
func (j *CancellationMail) Handle(ctx context.Context, job queue.Envelope) error {
	var payload appointments.CancellationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	a := payload.Appointment
	if a == nil || a.Provider == nil || a.Provider.Email == "" {
		return errors.New("payload has no provider to notify")
	}

	userName := ""
	if a.User != nil {
		userName = a.User.Name
	}

	var body bytes.Buffer
	err := cancellationTemplate.Execute(&body, cancellationView{
		Provider: a.Provider.Name,
		User:     userName,
		Date:     appointments.FormatDate(a.Date),
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	msg := mail.Message{
		To:      (&netmail.Address{Name: a.Provider.Name, Address: a.Provider.Email}).String(),
		Subject: "Agendamento cancelado",
		Body:    body.String(),
	}
	if err := j.sender.Send(msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	j.log.Info().
		Str("job_id", job.ID).
		Uint("appointment_id", a.ID).
		Msg("cancellation mail sent")
	return nil
}
