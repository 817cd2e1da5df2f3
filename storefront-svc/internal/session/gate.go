package session

import (
	"context"
	"strings"
	"time"

	"campus-storefront/storefront-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error)
}

// Gate answers whether a user may check out.
type Gate struct {
	profiles ProfileReader
	timeout  time.Duration
}

func NewGate(profiles ProfileReader, timeout time.Duration) *Gate {
	return &Gate{profiles: profiles, timeout: timeout}
}

// ProfileComplete requires a first name, a last name and a phone number.
func ProfileComplete(profile domain.Profile) bool {
	return strings.TrimSpace(profile.FirstName) != "" &&
		strings.TrimSpace(profile.LastName) != "" &&
		strings.TrimSpace(profile.Phone) != ""
}

type profileLookup struct {
	profile domain.Profile
	found   bool
	err     error
}

// CheckProfileComplete fails closed: a lookup that errors or outlasts the
// deadline counts as incomplete.
func (g *Gate) CheckProfileComplete(ctx context.Context, userID string) bool {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan profileLookup, 1)
	go func() {
		profile, found, err := g.profiles.GetProfile(ctx, userID)
		done <- profileLookup{profile: profile, found: found, err: err}
	}()

	select {
	case <-ctx.Done():
		log.WithField("user_id", userID).Warnf("profile check abandoned: %v", ctx.Err())
		return false
	case res := <-done:
		if res.err != nil {
			log.WithField("user_id", userID).Warnf("profile check failed: %v", res.err)
			return false
		}
		return res.found && ProfileComplete(res.profile)
	}
}
