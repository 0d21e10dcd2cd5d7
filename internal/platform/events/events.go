// Package events はドメインイベントをNATSへ発行します。
// 発行はベストエフォートで、失敗してもリクエスト処理は継続します。
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// イベントのサブジェクト。
const (
	SubjectAccountCreated           = "jobboard.account.created"
	SubjectAccountUpdated           = "jobboard.account.updated"
	SubjectAccountDeleted           = "jobboard.account.deleted"
	SubjectApplicationCreated       = "jobboard.application.created"
	SubjectApplicationStatusChanged = "jobboard.application.status_changed"
)

// Envelope はNATSに送信されるメッセージの形式です。
type Envelope struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// conn はNATS接続のうち発行に必要な部分です。
type conn interface {
	Publish(subj string, data []byte) error
}

// NATSPublisher はイベントをJSONにエンコードしてNATSへ発行します。
type NATSPublisher struct {
	nc  conn
	now func() time.Time
}

// Connect はNATSサーバーに接続します。切断時は自動で再接続します。
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("jobboard_backend"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	slog.Info("NATS connection successful", "url", url)
	return nc, nil
}

// NewNATSPublisher はNATSPublisherを生成します。
func NewNATSPublisher(nc conn) *NATSPublisher {
	return &NATSPublisher{nc: nc, now: time.Now}
}

// Publish はpayloadをEnvelopeに包んで発行します。
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Subject:    subject,
		OccurredAt: p.now().UTC(),
		Data:       payload,
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", subject, err)
	}
	if err := p.nc.Publish(subject, b); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// NopPublisher はNATSが設定されていない場合に使う何もしないPublisherです。
type NopPublisher struct{}

// Publish は何もせずnilを返します。
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
