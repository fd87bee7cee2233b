package session

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateSessionID は加入者ごとに一意なセッションIDを生成する。
// 形式: <IMSI>-<UUID>
func GenerateSessionID(imsi string) string {
	return fmt.Sprintf("%s-%s", imsi, uuid.New().String())
}
