package dto

// ProblemDetail はRFC 7807準拠のエラーレスポンスを表す。
// Instanceにはエラーが発生したリクエストパスが入る。
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Status   int    `json:"status"`
	Instance string `json:"instance,omitempty"`
}

// NewProblemDetail は新しいProblemDetailを生成する。
func NewProblemDetail(status int, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Detail: detail,
		Status: status,
	}
}

// WithInstance は発生元のリクエストパスを設定して自身を返す。
func (p *ProblemDetail) WithInstance(path string) *ProblemDetail {
	p.Instance = path
	return p
}
