package session

import "errors"

var (
	// ErrSessionNotFound はセッションが見つからない場合のエラー
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists は非終了セッションが既に存在する場合のエラー
	ErrSessionExists = errors.New("active session already exists")
	// ErrInvalidCreditGrant はクレジット付与が不正な場合のエラー
	ErrInvalidCreditGrant = errors.New("invalid credit grant")
)
