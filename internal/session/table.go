package session

// Table は加入者識別子からアクティブセッションへの対応を保持する。
// 終了処理中のセッションと新しいセッションが同一加入者の下に同居しうるため、
// 1加入者につき複数セッションを保持できる。非終了セッションは常に高々1つ。
// Local Enforcerのループ上でのみ変更されるため、ロックは持たない。
type Table struct {
	sessions map[string][]*Session
}

// NewTable は空のTableを生成する。
func NewTable() *Table {
	return &Table{sessions: make(map[string][]*Session)}
}

// Active は加入者の非終了セッションを返す。存在しない場合はnil。
func (t *Table) Active(imsi string) *Session {
	for _, s := range t.sessions[imsi] {
		if !s.Terminating {
			return s
		}
	}
	return nil
}

// Sessions は加入者の全セッション（終了処理中を含む）を返す。
func (t *Table) Sessions(imsi string) []*Session {
	return t.sessions[imsi]
}

// Find は加入者とセッションIDでセッションを検索する。
func (t *Table) Find(imsi, sessionID string) *Session {
	for _, s := range t.sessions[imsi] {
		if s.ID == sessionID {
			return s
		}
	}
	return nil
}

// Put はセッションをテーブルへ追加する。
func (t *Table) Put(s *Session) {
	t.sessions[s.IMSI] = append(t.sessions[s.IMSI], s)
}

// Remove は指定セッションをテーブルから除去し、除去したセッションを返す。
func (t *Table) Remove(imsi, sessionID string) *Session {
	list := t.sessions[imsi]
	for i, s := range list {
		if s.ID == sessionID {
			t.sessions[imsi] = append(list[:i], list[i+1:]...)
			if len(t.sessions[imsi]) == 0 {
				delete(t.sessions, imsi)
			}
			return s
		}
	}
	return nil
}

// Each は全セッションに対してfnを適用する。
func (t *Table) Each(fn func(*Session)) {
	for _, list := range t.sessions {
		for _, s := range list {
			fn(s)
		}
	}
}

// Count は保持しているセッション数を返す。
func (t *Table) Count() int {
	n := 0
	for _, list := range t.sessions {
		n += len(list)
	}
	return n
}
