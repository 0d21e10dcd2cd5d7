// Package dto はcompanyフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "jobboard_backend/internal/feature/company/domain/entity"

// LoginReq は/api/company/loginのリクエストボディです。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CompanyResponse はクライアントに返す企業情報です。パスワードハッシュは含めません。
type CompanyResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// NewCompanyResponse はエンティティからCompanyResponseを生成します。
func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{ID: c.ID, Name: c.Name, Email: c.Email, Image: c.Image}
}

// AuthResponse は登録・ログイン成功時のレスポンスです。
type AuthResponse struct {
	Success bool            `json:"success"`
	Company CompanyResponse `json:"company"`
	Token   string          `json:"token"`
}

// GetCompanyResponse は企業情報取得のレスポンスです。
type GetCompanyResponse struct {
	Success bool            `json:"success"`
	Company CompanyResponse `json:"company"`
}
