package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaetanosm/lifetrack/internal/client/remote"
	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/hashid"
	"github.com/gaetanosm/lifetrack/internal/logging"
	"github.com/gaetanosm/lifetrack/internal/models"
)

// The shared coach account is derived from well-known literals, not user
// input, so every client converges on the same record.
const (
	coachKey         = "base_user"
	coachDisplayName = "BASE_USER"
	coachCredential  = "base_user_password"
)

// provisioner lazily creates the singleton coach record and maintains its
// member list.
type provisioner struct {
	remote remote.Store
	logger logging.Logger
}

func newProvisioner(remote remote.Store, logger logging.Logger) *provisioner {
	return &provisioner{remote: remote, logger: logger}
}

// CoachID returns the fixed id of the shared coach record.
func (p *provisioner) CoachID() string {
	return hashid.DeriveID(coachKey)
}

// EnsureCoach creates the coach record remotely if it does not exist yet.
// Existing records are left untouched.
func (p *provisioner) EnsureCoach(ctx context.Context) error {
	id := p.CoachID()

	_, err := p.remote.Get(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("looking up coach record: %w", err)
	}

	rec := models.Normalize(id, models.UserRecord{
		Role:           models.RoleCoach,
		DisplayName:    coachDisplayName,
		PasswordDigest: hashid.Digest(coachCredential),
		MemberRefs:     []models.MemberRef{},
	}, "")
	if err := p.remote.Put(ctx, id, rec); err != nil {
		return fmt.Errorf("creating coach record: %w", err)
	}
	p.logger.Info(ctx, "coach record created", "id", id)
	return nil
}

// AttachMember appends ref to the coach record's member list, deduplicated
// by id, and writes the record back. The write is last-full-document-wins:
// concurrent registrations can clobber each other's appends, and a later
// full reconciliation is the only repair path.
func (p *provisioner) AttachMember(ctx context.Context, coachID string, ref models.MemberRef) error {
	coach, err := p.remote.Get(ctx, coachID)
	if err != nil {
		return fmt.Errorf("fetching coach record: %w", err)
	}

	if !coach.AddMemberRef(ref) {
		return nil
	}

	updated := models.Normalize(coachID, *coach, "")
	if err := p.remote.Put(ctx, coachID, updated); err != nil {
		return fmt.Errorf("writing coach record: %w", err)
	}
	return nil
}
