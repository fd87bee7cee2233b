package session

import "strings"

const hexDigits = "0123456789abcdef"

// FormatMAC はハードウェアアドレスのバイト列をコロン区切り小文字16進の
// 表示形式へ変換する。空入力は空文字列を返し、末尾にコロンは付かない。
// 例: [0xAB, 0x01] → "ab:01"
func FormatMAC(addr []byte) string {
	if len(addr) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(addr)*3 - 1)
	for i, c := range addr {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}
