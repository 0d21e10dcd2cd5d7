package client

import "sync"

// resource はStoreが保持する状態の単位です。リクエストの順序はresourceごとに管理します。
type resource int

const (
	resJobs resource = iota
	resUser
	resApplications
	resCompany
	numResources
)

// Store はクライアント側の状態（求人一覧・ユーザー・応募・企業）を保持します。
// 各resourceについて最後に発行したリクエストの応答だけを反映し、古い応答で新しい状態を上書きしません。
type Store struct {
	mu     sync.RWMutex
	issued [numResources]uint64

	jobs         []Job
	user         *User
	applications []Application
	company      *Company
	companyToken string
}

// NewStore は空のStoreを生成します。
func NewStore() *Store {
	return &Store{}
}

// begin はresのリクエストを発行し、そのシーケンス番号を返します。
func (s *Store) begin(res resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[res]++
	return s.issued[res]
}

// commit はseqがresの最新リクエストである場合のみapplyを実行し、反映したかどうかを返します。
func (s *Store) commit(res resource, seq uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued[res] {
		return false
	}
	apply()
	return true
}

// Jobs は公開求人一覧のコピーを返します。
func (s *Store) Jobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Job(nil), s.jobs...)
}

// User はログイン中のユーザーを返します。未取得の場合はnilです。
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Applications はログイン中のユーザーの応募一覧のコピーを返します。
func (s *Store) Applications() []Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Application(nil), s.applications...)
}

// Company はログイン中の企業を返します。未取得の場合はnilです。
func (s *Store) Company() *Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.company == nil {
		return nil
	}
	c := *s.company
	return &c
}

// CompanyToken は企業トークンを返します。
func (s *Store) CompanyToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companyToken
}

// SetCompanyToken は企業トークンを設定します。空文字でログアウト扱いになり、企業情報も破棄します。
func (s *Store) SetCompanyToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companyToken = token
	if token == "" {
		s.company = nil
		s.issued[resCompany]++
	}
}

// HasApplied は読み込み済みの応募一覧にjobIDへの応募が含まれるかを返します。
func (s *Store) HasApplied(jobID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.applications {
		if a.Job != nil && a.Job.ID == jobID {
			return true
		}
	}
	return false
}

// ClearUser はユーザーと応募一覧を破棄します（サインアウト時）。
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.applications = nil
	s.issued[resUser]++
	s.issued[resApplications]++
}
