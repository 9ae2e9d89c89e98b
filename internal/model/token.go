package model

import "time"

// Token is a persisted session token. Expired rows are removed by the
// background sweeper; logout deletes the row immediately.
type Token struct {
	ID         int    `gorm:"primaryKey;autoIncrement"`
	EmpleadoID int    `gorm:"index;not null"`
	Token      string `gorm:"type:varchar(512);uniqueIndex;not null"`
	CreadoEn   time.Time
	Expiracion time.Time `gorm:"index;not null"`
}

func (Token) TableName() string { return "tokens" }
