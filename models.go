package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profile is the user's role, stored as text so reordering the set never
// invalidates persisted rows
type Profile string

const (
	// ProfileUser is the standard profile (view only permissions)
	ProfileUser Profile = "user"
	// ProfileAdmin is the administrator profile
	ProfileAdmin Profile = "admin"
	// ProfileSystem is reserved for machine to machine access
	ProfileSystem Profile = "system"
)

// IsValid checks the profile is one of the closed set
func (p Profile) IsValid() bool {
	switch p {
	case ProfileUser, ProfileAdmin, ProfileSystem:
		return true
	default:
		return false
	}
}

// GetAllProfiles returns the closed profile set
func GetAllProfiles() []Profile {
	return []Profile{ProfileUser, ProfileAdmin, ProfileSystem}
}

// ParseProfile safely parses a string into a Profile
func ParseProfile(s string) (Profile, bool) {
	p := Profile(s)
	return p, p.IsValid()
}

// User is the directory entity authentication resolves against
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string        `bun:"name,notnull" json:"name,omitempty"`
	Email         string        `bun:"email,notnull,unique" json:"email,omitempty"`
	Age           *int          `bun:"age" json:"age,omitempty"`
	Address       string        `bun:"address" json:"address,omitempty"`
	IsActive      bool          `bun:"is_active" json:"is_active"`
	CredentialID  *uuid.UUID    `bun:"credential_id,type:uuid" json:"credential_id,omitempty"`
	Credential    *Credential   `bun:"rel:belongs-to,join:credential_id=id" json:"credential,omitempty"`
	Notes         *ProfileNotes `bun:"rel:has-one,join:id=user_id" json:"notes,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// HasCredential reports whether the user carries an associated credential
// record. Users without one can never match a login or password filter.
func (u *User) HasCredential() bool {
	return u != nil && u.CredentialID != nil && u.Credential != nil
}

// Credential is the stored login record associated with exactly one user
type Credential struct {
	bun.BaseModel `bun:"table:credentials,alias:cred"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Login         string    `bun:"login,notnull,unique" json:"login,omitempty"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	Profile       Profile   `bun:"profile,notnull" json:"profile,omitempty"`
}

// ProfileNotes is the free-form sub record owned by a user, created and
// deleted together with it
type ProfileNotes struct {
	bun.BaseModel `bun:"table:profile_notes,alias:note"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Interests     string     `bun:"interests" json:"interests,omitempty"`
	Feelings      string     `bun:"feelings" json:"feelings,omitempty"`
	OtherInfo     string     `bun:"other_info" json:"other_info,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// Username returns the display identifier embedded in token claims
func (u *User) Username() string {
	return u.Name
}

// UserProfile resolves the effective profile for claims issuance. A loaded
// credential is enough, the FK only matters for the login and password filters.
func (u *User) UserProfile() Profile {
	if u != nil && u.Credential != nil && u.Credential.Profile != "" {
		return u.Credential.Profile
	}
	return ProfileUser
}
