package kernel

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role represents a caller's role in the system. It is a closed enumeration:
// payloads crossing the boundary are decoded once via RoleFromString and only
// valid roles survive the decoding.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin is the platform administrator role.
	RoleAdmin

	// RoleFranchiseOwner is the owner of one or more storefronts.
	RoleFranchiseOwner

	// RoleStaff is storefront staff handling order fulfillment.
	RoleStaff

	// RoleCustomer is the customer placing orders.
	RoleCustomer
)

// getValidRoleStrings returns only valid Role values to support validation
// and boundary decoding.
func getValidRoleStrings() map[Role]string {
	return map[Role]string{
		RoleAdmin:          "ADMIN",
		RoleFranchiseOwner: "FRANCHISE_OWNER",
		RoleStaff:          "STAFF",
		RoleCustomer:       "CUSTOMER",
	}
}

// RoleFromString decodes a role label into a Role.
// Returns an error for any label outside the closed enumeration.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the label of the role, or "UNKNOWN" for invalid values.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the Role value is part of the closed enumeration.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsPrivileged reports whether the role may administer orders regardless of
// ownership. Administrators, franchise owners, and staff are privileged;
// customers are not.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleFranchiseOwner || r == RoleStaff
}

// Actor is the authenticated caller identity supplied by the boundary.
// It carries an opaque caller id and the caller's validated role set.
// The ordering core never inspects credentials; it only consults the Actor
// for ownership and privilege decisions.
type Actor struct {
	id    string
	roles []Role

	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a non-empty caller id and at least one valid role.
func NewActor(id string, roles []Role) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if len(roles) == 0 {
		return Actor{}, errs.NewValueIsRequiredError("actor roles")
	}
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return Actor{}, err
		}
	}

	return Actor{
		id:    id,
		roles: append([]Role(nil), roles...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the opaque caller identifier.
func (a Actor) ID() string {
	return a.id
}

// Roles returns a copy of the caller's role set.
func (a Actor) Roles() []Role {
	return append([]Role(nil), a.roles...)
}

// HasRole reports whether the caller holds the given role.
func (a Actor) HasRole(role Role) bool {
	for _, r := range a.roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether any of the caller's roles is privileged.
func (a Actor) IsPrivileged() bool {
	for _, r := range a.roles {
		if r.IsPrivileged() {
			return true
		}
	}
	return false
}
