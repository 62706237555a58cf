// Package container holds the components built once in main and shared by
// the router modules.
package container

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/config"
	"github.com/oksasatya/complaint-desk/internal/application"
	repo "github.com/oksasatya/complaint-desk/internal/domain/repository"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

// Container is filled by cmd/main. Optional integrations stay nil when
// they are not configured; leave interface fields unset rather than
// assigning a typed nil pointer.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	Users      repo.UserRepository
	Complaints repo.ComplaintRepository
	Reports    repo.ReportRepository

	Revocations application.Revoker
	Index       application.Indexer
	Publisher   application.Publisher
	Uploader    application.Uploader
}

func (c *Container) Credentials() *application.CredentialStore {
	return application.NewCredentialStore(c.Users, c.Config.BcryptCost)
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Credentials(), c.JWT, c.Revocations, c.Config.AdminEmail, c.Logger)
}

func (c *Container) ComplaintService() *application.ComplaintService {
	return application.NewComplaintService(c.Complaints, c.Users, c.Index, c.Publisher, c.Config, c.Logger)
}

func (c *Container) ReportService() *application.ReportService {
	return application.NewReportService(c.Reports, c.Uploader, c.Logger)
}
