package entity

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the account role. New registrations always start as Donor;
// Volunteer and Admin are reachable only through an explicit role update.
type Role string

const (
	RoleDonor     Role = "Donor"
	RoleVolunteer Role = "Volunteer"
	RoleAdmin     Role = "Admin"
)

// ParseRole validates a role token coming from the outside.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// AccountStatus is the moderation state of an account.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountBlocked AccountStatus = "blocked"
)

func ParseAccountStatus(s string) (AccountStatus, error) {
	switch AccountStatus(s) {
	case AccountActive, AccountBlocked:
		return AccountStatus(s), nil
	}
	return "", fmt.Errorf("unknown account status %q", s)
}

// CanTransition reports whether an account may move from s to next.
// active and blocked toggle freely; a no-op transition is rejected.
func (s AccountStatus) CanTransition(next AccountStatus) bool {
	return s != next
}

// Account is the aggregate root for registered donors and volunteers.
// There are no credentials here; authentication is delegated entirely
// to the identity verifier.
type Account struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	AvatarURL  string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	BloodGroup string             `bson:"blood_group,omitempty" json:"blood_group,omitempty"`
	District   string             `bson:"district,omitempty" json:"district,omitempty"`
	Upazila    string             `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Role       Role               `bson:"role" json:"role"`
	Status     AccountStatus      `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
