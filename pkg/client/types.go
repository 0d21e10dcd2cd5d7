package client

import "time"

// CompanyRef は求人や応募に埋め込まれた企業情報です。
type CompanyRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Job は公開求人です。
type Job struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Level       string      `json:"level"`
	Salary      int         `json:"salary"`
	Visible     bool        `json:"visible"`
	Date        time.Time   `json:"date"`
	Company     *CompanyRef `json:"companyId"`
}

// JobRef は応募に埋め込まれた求人情報です。
type JobRef struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Salary      int    `json:"salary"`
}

// User はログイン中のユーザーのプロフィールです。
type User struct {
	ID     string `json:"_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Resume string `json:"resume"`
}

// Application はログイン中のユーザーの応募です。
type Application struct {
	ID      string      `json:"_id"`
	UserID  string      `json:"userId"`
	Company *CompanyRef `json:"companyId"`
	Job     *JobRef     `json:"jobId"`
	Status  string      `json:"status"`
	Date    time.Time   `json:"date"`
}

// Company はログイン中の企業です。
type Company struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}
