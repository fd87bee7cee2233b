package store

// Valkeyキープレフィックス
const (
	// KeyPrefixSession はアクティブセッションのミラーエントリ
	KeyPrefixSession = "sess:"
)
