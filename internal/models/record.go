// Package models defines the canonical user record shared by every storage
// tier, and the normalizer that guarantees its shape.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Role classifies a record. Immutable after creation.
type Role string

const (
	RoleStandard Role = "standard"
	RoleCoach    Role = "coach"
)

// DefaultTargetCalories seeds a fresh diet plan.
const DefaultTargetCalories = 2000

// MemberRef is a coach-side reference to a client record.
type MemberRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// DietPlan is the only payload sub-structure with non-empty defaults.
type DietPlan struct {
	TargetCalories int               `json:"targetCalories"`
	Plan           []json.RawMessage `json:"plan"`
}

// Payload carries the tracker data. The identity core guarantees presence and
// default shape of every field but never interprets the contents.
type Payload struct {
	Habits               []json.RawMessage `json:"habits"`
	Workouts             []json.RawMessage `json:"workouts"`
	UploadedWorkoutPlans []json.RawMessage `json:"uploadedWorkoutPlans"`
	Diet                 []json.RawMessage `json:"diet"`
	DietPlan             DietPlan          `json:"dietPlan"`
	UploadedDietPlans    []json.RawMessage `json:"uploadedDietPlans"`
	DailyCompliance      []json.RawMessage `json:"dailyCompliance"`
	MeasurementsLog      []json.RawMessage `json:"measurementsLog"`
}

// UserRecord is the canonical entity persisted in both tiers.
//
// Invariants maintained by Normalize:
//   - every persisted record has the full payload shape;
//   - a coach record never carries OwnerID;
//   - CreatedAt is set once, UpdatedAt refreshed on every normalize.
type UserRecord struct {
	ID             string      `json:"id"`
	Role           Role        `json:"role"`
	DisplayName    string      `json:"displayName"`
	PasswordDigest string      `json:"passwordDigest,omitempty"`
	MemberRefs     []MemberRef `json:"memberRefs"`
	Payload        Payload     `json:"payload"`
	SleepStartedAt *time.Time  `json:"sleepStartTimestamp"`
	OwnerID        string      `json:"ownerId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// timeNow is a test seam.
var timeNow = time.Now

// Normalize maps an arbitrary or partial record into the canonical shape.
// Missing payload fields get their documented defaults, CreatedAt is
// preserved when already set, UpdatedAt is always refreshed, and OwnerID is
// resolved from the input record first, then fallbackOwnerID. Coach records
// never keep an owner. Safe to call on already-normalized input: the result
// differs only in UpdatedAt.
func Normalize(id string, partial UserRecord, fallbackOwnerID string) UserRecord {
	now := timeNow().UTC()

	rec := partial
	rec.ID = id
	if rec.Role == "" {
		rec.Role = RoleStandard
	}
	rec.DisplayName = strings.ToUpper(rec.DisplayName)

	if rec.MemberRefs == nil {
		rec.MemberRefs = []MemberRef{}
	}

	rec.Payload.Habits = orEmpty(rec.Payload.Habits)
	rec.Payload.Workouts = orEmpty(rec.Payload.Workouts)
	rec.Payload.UploadedWorkoutPlans = orEmpty(rec.Payload.UploadedWorkoutPlans)
	rec.Payload.Diet = orEmpty(rec.Payload.Diet)
	rec.Payload.UploadedDietPlans = orEmpty(rec.Payload.UploadedDietPlans)
	rec.Payload.DailyCompliance = orEmpty(rec.Payload.DailyCompliance)
	rec.Payload.MeasurementsLog = orEmpty(rec.Payload.MeasurementsLog)
	if rec.Payload.DietPlan.TargetCalories == 0 {
		rec.Payload.DietPlan.TargetCalories = DefaultTargetCalories
	}
	rec.Payload.DietPlan.Plan = orEmpty(rec.Payload.DietPlan.Plan)

	if rec.OwnerID == "" {
		rec.OwnerID = fallbackOwnerID
	}
	if rec.Role == RoleCoach {
		rec.OwnerID = ""
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	return rec
}

// AddMemberRef appends ref to the record's member list unless an entry with
// the same id is already present. Reports whether the list changed.
func (r *UserRecord) AddMemberRef(ref MemberRef) bool {
	for _, m := range r.MemberRefs {
		if m.ID == ref.ID {
			return false
		}
	}
	r.MemberRefs = append(r.MemberRefs, ref)
	return true
}

// HasMemberRef reports whether the member list contains the given id.
func (r *UserRecord) HasMemberRef(id string) bool {
	for _, m := range r.MemberRefs {
		if m.ID == id {
			return true
		}
	}
	return false
}

func orEmpty(s []json.RawMessage) []json.RawMessage {
	if s == nil {
		return []json.RawMessage{}
	}
	return s
}
