package domain

// User models an account. Capability is a single flag re-read from the
// store on every authorization decision.
type User struct {
	Username     string `json:"username" gorm:"column:username;primaryKey;size:64"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"column:is_admin;not null;default:false"`
}

func (User) TableName() string { return "user" }
