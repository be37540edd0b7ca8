package models

// User is a registered account. The password hash never leaves the service layer.
type User struct {
	BaseModel
	Username     string `json:"username" gorm:"uniqueIndex:idx_users_username;not null;size:50" validate:"required,min=3,max=50"`
	Email        string `json:"email" gorm:"uniqueIndex:idx_users_email;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
