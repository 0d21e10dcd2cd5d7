// Package entity はidentityフィーチャーのドメインエンティティを定義します。
package entity

import "strings"

// イベント種別。
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event はIDプロバイダーから届くWebhookのイベントエンベロープ {type, data} です。
type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData はユーザーイベントのペイロードのうち、アカウント同期に使う項目です。
type EventData struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
}

// EmailAddress はユーザーに紐づくメールアドレスです。
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail は最初に登録されたメールアドレスを返します。未登録の場合は空です。
func (d EventData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FullName は名と姓をつなげた表示名を返します。どちらかが欠けていても前後の空白は除去されます。
func (d EventData) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
}
