package identity

import "time"

const (
	RoleReviewer        = "Reviewer"
	RoleRestaurantOwner = "RestaurantOwner"
)

type Role struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"uniqueIndex;size:64;not null"`
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Roles        []Role    `json:"roles" gorm:"many2many:user_roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// DefaultRoles are created on first start with stable identifiers.
var DefaultRoles = []Role{
	{ID: "54466f17-02af-48e7-8ed3-5a4a8bfacf6f", Name: RoleReviewer},
	{ID: "ea294873-7a8c-4c0f-bfa7-a2eb492cbf8c", Name: RoleRestaurantOwner},
}
