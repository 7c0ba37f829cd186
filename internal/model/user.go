package model

// User holds authentication data only. Profile data lives on Member.
// "user"는 예약어이므로 테이블명은 app_user
type User struct {
	BaseEntity

	Email        string `gorm:"column:email;size:100;not null;uniqueIndex:idx_user_email"`
	PasswordHash string `gorm:"column:password_hash;size:60;not null"` // bcrypt hash
	FirstName    string `gorm:"column:first_name;size:50;not null"`
	LastName     string `gorm:"column:last_name;size:50;not null"`
	IsAdmin      bool   `gorm:"column:is_admin;not null"`
	IsActive     bool   `gorm:"column:is_active;not null"`
}

func (*User) TableName() string {
	return "app_user"
}

// NewUser creates an active, non-admin user. passwordHash must already be hashed.
func NewUser(email, passwordHash, firstName, lastName string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
