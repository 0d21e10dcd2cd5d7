// Package client はjobboard APIのGoクライアントです。
// 取得した求人・ユーザー・応募・企業をStoreに保持し、エラーや結果はNotifierに通知します。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	apphttp "jobboard_backend/internal/platform/http"
)

var (
	// ErrNotLoggedIn はユーザーがログインしていない状態で応募しようとした場合に返されます。
	ErrNotLoggedIn = errors.New("Login to apply for jobs")
	// ErrResumeRequired はレジュメ未登録のユーザーが応募しようとした場合に返されます。
	ErrResumeRequired = errors.New("Upload resume to apply")
	// ErrNoCompanyToken は企業トークンが無い状態で企業APIを呼んだ場合に返されます。
	ErrNoCompanyToken = errors.New("Not authorized, Login Again")
)

// APIError はサーバーが success:false を返した場合のエラーです。
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jobboard api %d: %s", e.Status, e.Message)
}

// TokenSource はIDプロバイダーのセッションからユーザーのBearerトークンを取得します。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc は関数をTokenSourceとして扱うためのアダプターです。
type TokenFunc func(ctx context.Context) (string, error)

// Token はf(ctx)を返します。
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Notifier は操作の結果をユーザーに通知します。
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier は何も通知しないNotifierです。
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Config はクライアントの設定です。
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig は環境変数からクライアント設定を読み込みます。
func LoadConfig() Config {
	return Config{
		BaseURL: os.Getenv("JOBBOARD_BASE_URL"),
		Timeout: 10 * time.Second,
	}
}

// Client はjobboard APIを呼び出し、結果をStoreに反映します。
type Client struct {
	cfg      Config
	http     *http.Client
	tokens   TokenSource
	notifier Notifier
	store    *Store
}

// New はClientを生成します。tokensがnilの場合、ユーザーAPIは呼び出しません。
func New(cfg Config, tokens TokenSource, notifier Notifier, store *Store) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if store == nil {
		store = NewStore()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:      cfg,
		http:     apphttp.NewHTTPClient(cfg.Timeout),
		tokens:   tokens,
		notifier: notifier,
		store:    store,
	}
}

// Store はクライアントの状態を返します。
func (c *Client) Store() *Store {
	return c.store
}

// Sync は初期表示時と同じ順序で状態を読み込みます。
// 求人一覧は常に、企業情報は企業トークンがある場合、ユーザーと応募はTokenSourceがある場合に取得します。
func (c *Client) Sync(ctx context.Context) error {
	var errs []error
	errs = append(errs, c.RefreshJobs(ctx))
	if c.store.CompanyToken() != "" {
		errs = append(errs, c.RefreshCompany(ctx))
	}
	if c.tokens != nil {
		errs = append(errs, c.RefreshUser(ctx), c.RefreshApplications(ctx))
	}
	return errors.Join(errs...)
}

// RefreshJobs は公開求人一覧を取得します。
func (c *Client) RefreshJobs(ctx context.Context) error {
	seq := c.store.begin(resJobs)
	var body struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs", authNone, nil, &body); err != nil {
		return c.fail(err)
	}
	c.store.commit(resJobs, seq, func() { c.store.jobs = body.Jobs })
	return nil
}

// GetJob は求人詳細を取得します。
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var body struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id), authNone, nil, &body); err != nil {
		return nil, c.fail(err)
	}
	return &body.Job, nil
}

// RefreshUser はログイン中のユーザーを取得します。
func (c *Client) RefreshUser(ctx context.Context) error {
	seq := c.store.begin(resUser)
	var body struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/user", authUser, nil, &body); err != nil {
		return c.fail(err)
	}
	c.store.commit(resUser, seq, func() { c.store.user = &body.User })
	return nil
}

// RefreshApplications はログイン中のユーザーの応募一覧を取得します。
func (c *Client) RefreshApplications(ctx context.Context) error {
	seq := c.store.begin(resApplications)
	var body struct {
		Applications []Application `json:"application"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/applications", authUser, nil, &body); err != nil {
		return c.fail(err)
	}
	c.store.commit(resApplications, seq, func() { c.store.applications = body.Applications })
	return nil
}

// RefreshCompany は企業トークンに対応する企業情報を取得します。
func (c *Client) RefreshCompany(ctx context.Context) error {
	seq := c.store.begin(resCompany)
	var body struct {
		Company Company `json:"company"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/company/company", authCompany, nil, &body); err != nil {
		return c.fail(err)
	}
	c.store.commit(resCompany, seq, func() { c.store.company = &body.Company })
	return nil
}

// LoginCompany は企業としてログインし、トークンと企業情報をStoreに保存します。
func (c *Client) LoginCompany(ctx context.Context, email, password string) error {
	seq := c.store.begin(resCompany)
	var body struct {
		Company Company `json:"company"`
		Token   string  `json:"token"`
	}
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/company/login", authNone, req, &body); err != nil {
		return c.fail(err)
	}
	c.store.commit(resCompany, seq, func() {
		c.store.company = &body.Company
		c.store.companyToken = body.Token
	})
	return nil
}

// ApplyForJob は求人に応募します。
// ユーザーが未取得ならErrNotLoggedIn、レジュメが未登録ならErrResumeRequiredを返し、サーバーには送信しません。
// 成功時は応募一覧を再取得します。
func (c *Client) ApplyForJob(ctx context.Context, jobID string) error {
	user := c.store.User()
	if user == nil {
		return c.fail(ErrNotLoggedIn)
	}
	if user.Resume == "" {
		return c.fail(ErrResumeRequired)
	}

	var body struct {
		Message string `json:"message"`
	}
	req := map[string]string{"jobId": jobID}
	if err := c.do(ctx, http.MethodPost, "/api/users/apply", authUser, req, &body); err != nil {
		return c.fail(err)
	}
	c.notifier.Success(body.Message)
	return c.RefreshApplications(ctx)
}

// fail はerrをNotifierに通知してそのまま返します。
func (c *Client) fail(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.notifier.Error(apiErr.Message)
	} else {
		c.notifier.Error(err.Error())
	}
	return err
}

type authKind int

const (
	authNone authKind = iota
	authUser
	authCompany
)

// envelope は全エンドポイント共通のレスポンスの先頭部分です。
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do はリクエストを送信し、success:true の場合にレスポンスをoutへデコードします。
func (c *Client) do(ctx context.Context, method, path string, auth authKind, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch auth {
	case authUser:
		if c.tokens == nil {
			return ErrNotLoggedIn
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("get user token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	case authCompany:
		token := c.store.CompanyToken()
		if token == "" {
			return ErrNoCompanyToken
		}
		req.Header.Set("token", token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("jobboard api %d: decode response: %w", res.StatusCode, err)
	}
	if !env.Success || res.StatusCode >= 400 {
		return &APIError{Status: res.StatusCode, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(b, out)
}
