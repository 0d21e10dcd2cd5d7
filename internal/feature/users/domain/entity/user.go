// Package entity はusersフィーチャーのドメインエンティティを定義します。
package entity

// User は求職者のプロフィールです。
// IDはIDプロバイダーが発行したもので、ローカルで生成されることはありません。
type User struct {
	// ID はIDプロバイダーのユーザーIDで、主キーです。
	ID string `gorm:"primaryKey;size:191"`

	// Email は一意のメールアドレスです。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	Name string `gorm:"size:255"`

	// Image はアバター画像のURLです。
	Image string `gorm:"size:1024"`

	// Resume はアップロード済みレジュメのURLです。未登録の場合は空です。
	Resume string `gorm:"size:1024"`
}
