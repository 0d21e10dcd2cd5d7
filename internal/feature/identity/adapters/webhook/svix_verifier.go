// Package webhook はIDプロバイダーのWebhook署名（Svix方式）の検証を提供します。
package webhook

import (
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// Svixの署名ヘッダー。
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// RequiredHeaders は検証に必要なヘッダーの一覧です。
var RequiredHeaders = []string{HeaderID, HeaderTimestamp, HeaderSignature}

// svixVerifier は共有シークレットで id.timestamp.body の署名を検証します。
type svixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier は whsec_ 形式のシークレットからsvixVerifierを生成します。
func NewSvixVerifier(secret string) (*svixVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return &svixVerifier{wh: wh}, nil
}

// Verify は受信したままのボディとヘッダーで署名を検証します。
// 署名不一致、タイムスタンプの期限切れの場合にエラーを返します。
func (v *svixVerifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
