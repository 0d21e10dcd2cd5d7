// Package entity はjobsフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Job は企業が掲載する求人です。
type Job struct {
	ID    string `gorm:"primaryKey;size:36"`
	Title string `gorm:"size:255;not null"`

	// Description はリッチテキスト（HTML）で、加工せずに保存します。
	Description string `gorm:"type:text;not null"`

	Category string `gorm:"size:255"`
	Location string `gorm:"size:255"`
	Level    string `gorm:"size:255"`
	Salary   int

	// CompanyID は求人を掲載した企業のIDです。
	CompanyID string `gorm:"index;size:36;not null"`

	// Visible がfalseの求人は公開一覧に表示されません。
	Visible bool

	// Date は掲載日時です。
	Date time.Time
}
