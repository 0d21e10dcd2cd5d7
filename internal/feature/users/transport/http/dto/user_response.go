// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "jobboard_backend/internal/feature/users/domain/entity"

// UserResponse はユーザープロフィールのJSON表現です。
type UserResponse struct {
	ID     string `json:"_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Resume string `json:"resume"`
}

// NewUserResponse はエンティティからUserResponseを生成します。
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.Image, Resume: u.Resume}
}

// GetUserResponse は GET /api/users/user のレスポンスです。
type GetUserResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// UpdateResumeResponse は POST /api/users/update-resume のレスポンスです。
type UpdateResumeResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
