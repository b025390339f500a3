package api

import (
	"github.com/JaimeStill/docket/internal/accounts"
	"github.com/JaimeStill/docket/internal/attachments"
	"github.com/JaimeStill/docket/internal/cases"
	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/internal/reports"
	"github.com/JaimeStill/docket/internal/reviews"
	"github.com/JaimeStill/docket/internal/templates"
	"github.com/JaimeStill/docket/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Accounts    accounts.System
	Attachments attachments.System
	Cases       cases.System
	Reports     reports.System
	Reviews     reviews.System
	Templates   templates.System
	Users       users.System
}

// NewDomain creates all domain systems from the API runtime. Cases and
// reviews reference each other (reviews resolve case context for exports,
// case archival retires live editor sessions), so cases receive the review
// system through BindSessions after both exist.
func NewDomain(runtime *Runtime, cfg *config.Config) (*Domain, error) {
	db := runtime.Database.Connection()

	casesSystem := cases.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	reviewsSystem := reviews.New(
		db,
		casesSystem,
		cfg.Editor.SessionConfig(),
		runtime.Logger,
	)

	casesSystem.BindSessions(reviewsSystem)

	attachmentsSystem := attachments.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	templatesSystem := templates.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	accountsSystem := accounts.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	usersSystem, err := users.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)
	if err != nil {
		return nil, err
	}

	reportsSystem := reports.New(
		db,
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		casesSystem,
		reviewsSystem,
		templatesSystem,
	)

	return &Domain{
		Accounts:    accountsSystem,
		Attachments: attachmentsSystem,
		Cases:       casesSystem,
		Reports:     reportsSystem,
		Reviews:     reviewsSystem,
		Templates:   templatesSystem,
		Users:       usersSystem,
	}, nil
}
