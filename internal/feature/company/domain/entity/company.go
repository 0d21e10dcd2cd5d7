// Package entity はcompanyフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Company は求人を掲載する企業（採用担当者アカウント）です。
type Company struct {
	// ID は企業の一意な識別子（UUID）です。
	ID string `gorm:"primaryKey;size:36"`

	Name string `gorm:"size:255;not null"`

	// Email はログインに使うメールアドレスで、全企業で一意です。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password はbcryptでハッシュ化されたパスワードです。平文は保存しません。
	Password string `gorm:"size:255;not null"`

	// Image はロゴ画像のURLです。
	Image string `gorm:"size:1024"`

	CreatedAt time.Time
}
