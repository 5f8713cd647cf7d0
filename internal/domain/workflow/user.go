package workflow

import (
	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

func FindUser(users []entity.User, id string) (entity.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}

func FindByEmailAndRole(users []entity.User, email string, role entity.Role) (entity.User, bool) {
	for _, u := range users {
		if u.Email == email && u.Role == role {
			return u, true
		}
	}
	return entity.User{}, false
}

func UsersByRole(users []entity.User, role entity.Role) []entity.User {
	return filter(users, func(u entity.User) bool { return u.Role == role })
}

// RegisterUser appends a user record. Callers check for an existing match first.
func RegisterUser(current []entity.User, u entity.User) []entity.User {
	return appendCopy(current, u)
}

// SetPresence toggles a user's availability flag.
func SetPresence(current []entity.User, userID string, online bool) ([]entity.User, error) {
	next, found := update(current, func(u entity.User) bool { return u.ID == userID }, func(u *entity.User) {
		u.IsOnline = online
	})
	if !found {
		return current, errors.NotFound("User", nil)
	}
	return next, nil
}

// ContactRole is the role a user of the given role chats with.
func ContactRole(role entity.Role) entity.Role {
	switch role {
	case entity.RoleCitizen:
		return entity.RoleVolunteer
	case entity.RoleVolunteer:
		return entity.RoleCitizen
	case entity.RoleNGO:
		return entity.RoleVolunteer
	case entity.RoleGovernment:
		return entity.RoleNGO
	}
	return ""
}

// Contacts lists the users someone with role can open a conversation with.
func Contacts(users []entity.User, role entity.Role) []entity.User {
	return UsersByRole(users, ContactRole(role))
}

// OnlineVolunteers lists volunteers currently available for assignment.
func OnlineVolunteers(users []entity.User) []entity.User {
	return filter(users, func(u entity.User) bool { return u.Role == entity.RoleVolunteer && u.IsOnline })
}
