package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	tpl "github.com/oksasatya/complaint-desk/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack   Outcome = iota // sent
	Drop                 // unusable, never retry
	Retry                // transient send failure, requeue
)

// Worker turns queued EmailJobs into sent mail.
type Worker struct {
	Sender  Sender
	Timeout time.Duration
	Logger  *logrus.Logger
}

func NewWorker(sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Timeout: 15 * time.Second, Logger: logger}
}

// EnsureRecipient copies To into Data["Email"] when the template data lacks it.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"].(string); !ok || v == "" {
		j.Data["Email"] = j.To
	}
}

func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.log().WithError(err).Warn("bad message")
		return Drop
	}
	if !job.Valid() {
		w.log().WithField("to", job.To).Warn("incomplete email job")
		return Drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		job.EnsureRecipient()
		s, t, h, err := tpl.Render(job.Template, job.Data)
		if err != nil {
			w.log().WithError(err).WithField("template", job.Template).Warn("render failed")
			return Drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.log().WithError(err).WithField("to", job.To).Warn("send failed")
		return Retry
	}
	w.log().WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return Ack
}

func (w *Worker) log() *logrus.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return logrus.StandardLogger()
}
