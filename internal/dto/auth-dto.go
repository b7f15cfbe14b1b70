package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         UserPublicDTO `json:"user"`
}

// UserPublicDTO describes the signed-in user. EditableOrderFields lists the order
// fields the role may write, so forms can disable the rest.
type UserPublicDTO struct {
	ID                  uint64   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Role                string   `json:"role"`
	Permissions         []string `json:"permissions"`
	EditableOrderFields []string `json:"editable_order_fields"`
}
