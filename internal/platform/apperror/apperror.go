// Package apperror は全フィーチャー共通のエラー種別と、そのHTTPステータスへの対応付けを定義します。
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind はトランスポート層で扱うためのエラー分類です。
type Kind int

const (
	// KindInternal は想定外の失敗です。メッセージはクライアントに返しません。
	KindInternal Kind = iota
	// KindValidation は不正なリクエスト（必須項目の欠落、未知のイベント種別など）です。
	KindValidation
	// KindUnauthorized は認証または署名検証の失敗です。
	KindUnauthorized
	// KindNotFound は対象のレコードが存在しないことを表します。
	KindNotFound
	// KindConflict は既存の状態と衝突するビジネスルール違反（重複など）です。
	KindConflict
)

// String はログ出力用の短い名前を返します。
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error はKindとクライアントに返してよいメッセージを持つエラーです。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New は原因を持たないエラーを生成します。
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap はerrにKindとメッセージを付与します。
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation はKindValidationのエラーを生成します。
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Internal は想定外のエラーをラップします。
func Internal(err error) *Error {
	return Wrap(err, KindInternal, "Internal server error")
}

// KindOf はエラーチェーン中の最初の*ErrorのKindを返します。
// 分類されていないエラーはKindInternalとして扱います。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf はクライアントに返すメッセージを返します。
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}

// HTTPStatus はKindをHTTPステータスコードに変換します。
func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
