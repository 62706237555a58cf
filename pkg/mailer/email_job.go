package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // complaint_received, complaint_status
	Data     map[string]any `json:"data,omitempty"`
}

// Valid reports whether the job carries enough to render and send.
func (j EmailJob) Valid() bool {
	if j.To == "" {
		return false
	}
	if j.Template != "" {
		return true
	}
	return j.Subject != "" && (j.Text != "" || j.HTML != "")
}
