// Package entity はapplicationsフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Status は応募の選考状態です。
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

// Valid はsが定義済みの状態かどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// JobApplication はユーザーの求人への応募です。
// 同一ユーザーが同一求人に応募できるのは1件のみで、(user_id, job_id) の一意インデックスで保証します。
type JobApplication struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:191;not null;uniqueIndex:idx_user_job"`
	JobID     string `gorm:"size:36;not null;uniqueIndex:idx_user_job"`
	CompanyID string `gorm:"size:36;not null;index"`
	Status    Status `gorm:"size:16;not null"`
	Date      time.Time
}
