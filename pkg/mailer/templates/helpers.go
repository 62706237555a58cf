package templates

import (
	"time"

	"github.com/oksasatya/complaint-desk/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithComplaint(id, subject, category, status string) Option {
	return func(d *EmailData) {
		d.ComplaintID = id
		d.Subject = subject
		d.Category = category
		d.Status = status
	}
}

// NewBaseEmailData fills the common fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.AppName = cfg.AppName
		d.SupportURL = cfg.SupportURL
		d.DashboardURL = cfg.DashboardURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewComplaintReceivedData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, ComplaintReceived, name, email, opts...))
}

func NewComplaintStatusData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, ComplaintStatus, name, email, opts...))
}
