package models

// UserAccount stores a username with a one-way hash of its password.
type UserAccount struct {
	Seq          int    `gorm:"column:seq;primaryKey;autoIncrement:false" json:"-"`
	Username     string `gorm:"column:username;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"password_hash"`
}

func (UserAccount) TableName() string { return "user_accounts" }

func (u *UserAccount) SetSequence(seq int) { u.Seq = seq }
