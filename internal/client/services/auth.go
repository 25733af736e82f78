package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gaetanosm/lifetrack/internal/client/cache"
	"github.com/gaetanosm/lifetrack/internal/client/remote"
	"github.com/gaetanosm/lifetrack/internal/client/session"
	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/hashid"
	"github.com/gaetanosm/lifetrack/internal/logging"
	"github.com/gaetanosm/lifetrack/internal/models"
)

// AuthService is the surface the UI/session layer consumes.
//
// Contract:
//   - Login: resolve the record across both tiers and verify the password.
//   - Register: create a record, remote first, local cache on remote failure.
//     A cache-only registration still succeeds, with Session.Pending set.
//   - Logout: drop the saved session.
//   - CheckSession: run a full reconciliation, then report the saved session
//     if its token is still valid.
//
// Transport failures never escape these methods as crashes; wherever a
// fallback tier exists they are converted into fallback attempts.
type AuthService interface {
	Login(ctx context.Context, name, password string) (*session.Session, error)
	Register(ctx context.Context, name, password string, role models.Role) (*session.Session, error)
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (*session.Session, error)
}

type authService struct {
	remote   remote.Store
	cache    cache.Repository
	sessions *session.Store
	tokens   *session.Manager
	sync     SyncService
	prov     *provisioner
	logger   logging.Logger
}

func NewAuthService(
	remoteStore remote.Store,
	cacheRepo cache.Repository,
	sessions *session.Store,
	tokens *session.Manager,
	sync SyncService,
	logger logging.Logger,
) AuthService {
	return &authService{
		remote:   remoteStore,
		cache:    cacheRepo,
		sessions: sessions,
		tokens:   tokens,
		sync:     sync,
		prov:     newProvisioner(remoteStore, logger),
		logger:   logger,
	}
}

// resolutionSource records which tier produced the record.
type resolutionSource string

const (
	sourceRemoteDirect  resolutionSource = "remote-direct"
	sourceRemoteScan    resolutionSource = "remote-scan"
	sourceLocalFallback resolutionSource = "local-fallback"
)

type resolution struct {
	rec    *models.UserRecord
	id     string
	source resolutionSource
}

// resolve finds the canonical record for a login name, in strict priority
// order: remote get by derived id, remote scan by display name, local cache
// by derived id. The scan handles records whose id was derived under a
// different original key, e.g. provisioned by another user; in that case the
// matched record's own id wins over the derived one.
func (a *authService) resolve(ctx context.Context, loginName string) (*resolution, error) {
	key := strings.ToLower(loginName)
	derivedID := hashid.DeriveID(key)

	rec, err := a.remote.Get(ctx, derivedID)
	if err == nil {
		return &resolution{rec: rec, id: derivedID, source: sourceRemoteDirect}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		a.logger.Warn(ctx, "remote lookup failed, trying other tiers", "id", derivedID, "error", err)
	}

	all, err := a.remote.GetAll(ctx)
	if err == nil {
		for id, candidate := range all {
			if strings.ToLower(candidate.DisplayName) == key {
				candidate := candidate
				return &resolution{rec: &candidate, id: id, source: sourceRemoteScan}, nil
			}
		}
	} else {
		a.logger.Warn(ctx, "remote scan failed, trying local cache", "error", err)
	}

	rec, err = a.cache.Get(ctx, derivedID)
	if err == nil {
		return &resolution{rec: rec, id: derivedID, source: sourceLocalFallback}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		a.logger.Warn(ctx, "cache lookup failed", "id", derivedID, "error", err)
	}

	return nil, common.ErrNotFound
}

// checkPassword implements the credential rule: the supplied password's
// digest must equal the stored one, except that a record with no stored
// digest implicitly accepts the login name itself as the password.
func checkPassword(rec *models.UserRecord, loginName, password string) bool {
	input := hashid.Digest(password)
	if rec.PasswordDigest != "" {
		return rec.PasswordDigest == input
	}
	return input == hashid.DeriveID(loginName)
}

func (a *authService) Login(ctx context.Context, name, password string) (*session.Session, error) {
	res, err := a.resolve(ctx, name)
	if err != nil {
		// Same answer as a wrong password: no user enumeration.
		return nil, common.ErrInvalidCredential
	}

	if !checkPassword(res.rec, name, password) {
		return nil, common.ErrInvalidCredential
	}

	rec := models.Normalize(res.id, *res.rec, res.rec.OwnerID)

	if res.source == sourceLocalFallback {
		// The authoritative copy lives only in the cache; push it now that
		// someone is looking at it. Failure keeps it cached for the next
		// reconciliation.
		if err := a.sync.PushOne(ctx, res.id); err != nil {
			a.logger.Warn(ctx, "post-login push failed", "id", res.id, "error", err)
		}
	}

	sess, err := a.startSession(ctx, &rec, false)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "login succeeded", "id", res.id, "source", string(res.source))
	return sess, nil
}

func (a *authService) Register(ctx context.Context, name, password string, role models.Role) (*session.Session, error) {
	key := strings.ToLower(name)
	id := hashid.DeriveID(key)

	if taken, err := a.nameTaken(ctx, id, key); err != nil {
		return nil, err
	} else if taken {
		return nil, common.ErrAlreadyExists
	}

	var coachID string
	if role == models.RoleStandard {
		coachID = a.prov.CoachID()
		if err := a.prov.EnsureCoach(ctx); err != nil {
			// The standard record still gets ownerId = coach id; the coach
			// record materializes on a later registration.
			a.logger.Warn(ctx, "coach provisioning deferred", "error", err)
		}
	}

	rec := models.Normalize(id, models.UserRecord{
		Role:           role,
		DisplayName:    key,
		PasswordDigest: hashid.Digest(password),
	}, coachID)

	pending := false
	if err := a.remote.Put(ctx, id, rec); err != nil {
		a.logger.Warn(ctx, "remote registration failed, caching locally", "id", id, "error", err)
		if cacheErr := a.cache.Put(ctx, id, rec); cacheErr != nil {
			return nil, fmt.Errorf("%w: remote: %v, cache: %v", common.ErrPersistFailure, err, cacheErr)
		}
		pending = true
	}

	if role == models.RoleStandard {
		// Attempted even for cache-only registrations; with the remote down it
		// fails along with everything else and the linkage stays best-effort.
		if err := a.prov.AttachMember(ctx, coachID, models.MemberRef{ID: id, DisplayName: rec.DisplayName}); err != nil {
			a.logger.Warn(ctx, "membership linkage failed", "id", id, "error", err)
		}
	}

	sess, err := a.startSession(ctx, &rec, pending)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "registration succeeded", "id", id, "role", string(role), "pending", pending)
	return sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) CheckSession(ctx context.Context) (*session.Session, error) {
	if _, err := a.sync.ReconcileAll(ctx); err != nil {
		a.logger.Warn(ctx, "startup reconciliation failed", "error", err)
	}

	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := a.tokens.Verify(sess.Token); err != nil {
		_ = a.sessions.Clear(ctx)
		return nil, common.ErrNoSession
	}

	if sess.Pending {
		// Reconciliation may have just pushed the record; absent from the
		// cache means it now lives remotely.
		if _, err := a.cache.Get(ctx, sess.UserID); errors.Is(err, common.ErrNotFound) {
			sess.Pending = false
			if err := a.sessions.Save(ctx, sess); err != nil {
				a.logger.Warn(ctx, "failed to update session", "error", err)
			}
		}
	}

	return sess, nil
}

// nameTaken checks both tiers for an existing derived id, and the remote
// collection for a display-name collision under a different id.
func (a *authService) nameTaken(ctx context.Context, id, key string) (bool, error) {
	_, err := a.remote.Get(ctx, id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		a.logger.Warn(ctx, "remote existence check failed", "id", id, "error", err)
	} else if all, allErr := a.remote.GetAll(ctx); allErr == nil {
		for _, candidate := range all {
			if strings.ToLower(candidate.DisplayName) == key {
				return true, nil
			}
		}
	}

	_, err = a.cache.Get(ctx, id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, err
	}
	return false, nil
}

func (a *authService) startSession(ctx context.Context, rec *models.UserRecord, pending bool) (*session.Session, error) {
	token, err := a.tokens.Generate(rec)
	if err != nil {
		return nil, fmt.Errorf("issuing session token: %w", err)
	}
	sess := &session.Session{
		ID:          uuid.NewString(),
		UserID:      rec.ID,
		DisplayName: rec.DisplayName,
		Role:        rec.Role,
		OwnerID:     rec.OwnerID,
		Token:       token,
		Pending:     pending,
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return sess, nil
}
