// Package logging はログ関連のユーティリティを提供する。
package logging

// MaskIMSI はIMSIをマスキングする。
// 先頭6桁 + マスク + 末尾1桁。
// 例: 440101234567890 → 440101********0
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskIMSI(imsi string, enabled bool) string {
	if !enabled {
		return imsi
	}
	return maskPartial(imsi, 6, 1, '*')
}

// maskPartial は文字列の一部をマスキングする。
// 文字列が keepPrefix+keepSuffix 以下の長さの場合はそのまま返す。
func maskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	for i := 0; i < keepPrefix; i++ {
		result[i] = runes[i]
	}
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	for i := length - keepSuffix; i < length; i++ {
		result[i] = runes[i]
	}
	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// IMSI はIMSIをマスキングする。
func (m *Masker) IMSI(imsi string) string {
	return MaskIMSI(imsi, m.enabled)
}
