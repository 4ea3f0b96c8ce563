package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/legoephysio/clinic-booking/internal/booking"
)

const (
	subjectStaffRequest = "New Appointment Request"
	subjectPatientConf  = "Appointment Request Confirmation"
	subjectDailyDigest  = "Daily Appointments Summary"

	defaultContact = "info@legoephysiowellness.com"

	dateLayout = "Jan 2, 2006 3:04 PM"
)

var staffTmpl = template.Must(template.New("staff").Parse(`<h2>New Appointment Request</h2>
<p><strong>Patient:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Department:</strong> {{.Department}}</p>
<p><strong>Requested Therapist:</strong> {{.Therapist}}</p>
<p><strong>Message:</strong> {{.Message}}</p>
`))

var patientTmpl = template.Must(template.New("patient").Parse(`<h2>Thank you for your appointment request</h2>
<p>Dear {{.Name}},</p>
<p>We have received your appointment request for {{.Date}}.</p>
<p>Our team will review your request and contact you shortly to confirm your appointment.</p>
<p>Appointment Details:</p>
<ul>
  <li>Department: {{.Department}}</li>
  <li>Requested Therapist: {{.Therapist}}</li>
  <li>Date: {{.Date}}</li>
</ul>
<p>If you need to make any changes, please contact us at {{.Contact}}</p>
`))

var digestTmpl = template.Must(template.New("digest").Parse(`<h2>Daily Appointments Summary</h2>
<p>Total appointments today: {{len .Rows}}</p>
<table border="1" cellpadding="5" style="border-collapse: collapse;">
  <tr>
    <th>Name</th>
    <th>Email</th>
    <th>Phone</th>
    <th>Appointment Date</th>
    <th>Department</th>
    <th>Therapist</th>
  </tr>
{{- range .Rows}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{.Email}}</td>
    <td>{{.Phone}}</td>
    <td>{{.Date}}</td>
    <td>{{.Department}}</td>
    <td>{{.Therapist}}</td>
  </tr>
{{- end}}
</table>
`))

type messageData struct {
	Name       string
	Email      string
	Phone      string
	Date       string
	Department string
	Therapist  string
	Message    string
	Contact    string
}

type digestRow struct {
	Name       string
	Email      string
	Phone      string
	Date       string
	Department string
	Therapist  string
}

// Notifier renders and dispatches the clinic's booking emails through an
// EmailSender.
type Notifier struct {
	sender  EmailSender
	inbox   string // fixed operational inbox
	contact string // contact address shown in the patient confirmation
}

func NewNotifier(sender EmailSender, inbox, contact string) *Notifier {
	if contact == "" {
		contact = defaultContact
	}
	return &Notifier{
		sender:  sender,
		inbox:   inbox,
		contact: contact,
	}
}

// StaffRequest sends the new-request email to the operational inbox, with
// reply-to set to the submitter so staff can answer the patient directly.
// All seven fields render verbatim; an absent message renders empty.
func (n *Notifier) StaffRequest(ctx context.Context, appt *booking.Appointment) error {
	html, err := render(staffTmpl, dataFor(appt, n.contact))
	if err != nil {
		return fmt.Errorf("render staff email: %w", err)
	}

	text := fmt.Sprintf("New appointment request from %s (%s, %s) for %s, %s with %s. Message: %s",
		appt.Name, appt.Email, appt.Phone, appt.Date.Format(dateLayout), appt.Department, appt.Therapist, appt.Message)

	msg := EmailMessage{
		To:      n.inbox,
		ReplyTo: appt.Email,
		Subject: subjectStaffRequest,
		Body:    text,
		HTML:    html,
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return &booking.EmailError{Recipient: n.inbox, Err: err}
	}
	return nil
}

// PatientConfirmation confirms receipt to the submitter and restates the
// department, therapist, and requested date.
func (n *Notifier) PatientConfirmation(ctx context.Context, appt *booking.Appointment) error {
	html, err := render(patientTmpl, dataFor(appt, n.contact))
	if err != nil {
		return fmt.Errorf("render patient email: %w", err)
	}

	text := fmt.Sprintf("Dear %s, we have received your appointment request for %s (%s, %s). We will contact you shortly to confirm. For changes, contact %s.",
		appt.Name, appt.Date.Format(dateLayout), appt.Department, appt.Therapist, n.contact)

	msg := EmailMessage{
		To:      appt.Email,
		ToName:  appt.Name,
		Subject: subjectPatientConf,
		Body:    text,
		HTML:    html,
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return &booking.EmailError{Recipient: appt.Email, Err: err}
	}
	return nil
}

// Digest sends one summary email to the operational inbox with a table row
// per appointment. Callers skip the digest entirely when there is nothing to
// report.
func (n *Notifier) Digest(ctx context.Context, appts []booking.Appointment, asOf time.Time) error {
	rows := make([]digestRow, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, digestRow{
			Name:       a.Name,
			Email:      a.Email,
			Phone:      a.Phone,
			Date:       a.Date.Format(dateLayout),
			Department: a.Department,
			Therapist:  a.Therapist,
		})
	}

	html, err := render(digestTmpl, struct{ Rows []digestRow }{Rows: rows})
	if err != nil {
		return fmt.Errorf("render digest email: %w", err)
	}

	msg := EmailMessage{
		To:      n.inbox,
		Subject: subjectDailyDigest,
		Body:    fmt.Sprintf("Total appointments today: %d (as of %s)", len(rows), asOf.Format(dateLayout)),
		HTML:    html,
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return &booking.EmailError{Recipient: n.inbox, Err: err}
	}
	return nil
}

func dataFor(appt *booking.Appointment, contact string) messageData {
	return messageData{
		Name:       appt.Name,
		Email:      appt.Email,
		Phone:      appt.Phone,
		Date:       appt.Date.Format(dateLayout),
		Department: appt.Department,
		Therapist:  appt.Therapist,
		Message:    appt.Message,
		Contact:    contact,
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
