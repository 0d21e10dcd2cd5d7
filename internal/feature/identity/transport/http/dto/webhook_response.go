// Package dto はidentityフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// WebhookResponse はWebhook処理成功時のレスポンスです。
type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
