package user

// UserRepository abstracts account storage.
type UserRepository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	EmailExists(email string) (bool, error)
}
