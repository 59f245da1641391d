package users

import (
	"context"
	"strings"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

type Service struct {
	log logger.Logger
}

func NewService(log logger.Logger) *Service {
	return &Service{
		log: log,
	}
}

// Register creates a driver and stores both the driver record and its
// profile copy in the session. Input is taken as given.
func (s *Service) Register(ctx context.Context, sess *models.Session, name, class, identifier string) *models.User {
	ctx = wrap.WithAction(ctx, "register_driver")

	driver := models.NewDriver(name, class, identifier)
	sess.SetDriver(driver.Record())
	sess.SetUser(driver.Profile())

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info(ctx, "driver registered", "role", driver.Role().String())

	return driver
}

// Profile returns the session profile, or an empty one when nobody registered yet.
func (s *Service) Profile(sess *models.Session) models.Profile {
	if u := sess.User(); u != nil {
		return *u
	}
	return models.Profile{}
}

// UpdateProfile overwrites the session profile with trimmed values. A missing
// profile is initialised first. The registered driver record is not touched.
func (s *Service) UpdateProfile(ctx context.Context, sess *models.Session, name, class, identifier string) models.Profile {
	ctx = wrap.WithAction(ctx, "update_profile")

	if sess.User() == nil {
		s.log.Warn(ctx, "no profile in session, initialising an empty one")
	}

	sess.UpdateUser(func(p *models.Profile) {
		p.Name = strings.TrimSpace(name)
		p.Class = strings.TrimSpace(class)
		p.Identifier = strings.TrimSpace(identifier)
	})

	metrics.ProfilesUpdatedTotal.Inc()
	s.log.Debug(ctx, "profile updated")

	return *sess.User()
}
