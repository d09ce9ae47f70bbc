// Package models は委員会・タスク・管理者の構造体を定義します。
package models

// TotalCommittees はダッシュボードに表示する委員会の固定総数です。
const TotalCommittees = 10

// StatusNotStarted は委員会ステータスの初期値です。
const StatusNotStarted = "not-started"

// Committee は委員会のデータベース構造体を表します。
// JSONタグ: クライアントとの通信用
// dbタグ: sqlxでのカラムマッピング用
type Committee struct {
	ID        int     `json:"id" db:"id"`                 // 主キー (シード時に決定)
	Title     string  `json:"title" db:"title"`           // 委員会名
	Appendix  *string `json:"appendix" db:"appendix"`     // 付録ラベル (任意)
	Status    string  `json:"status" db:"status"`         // not-started / in-progress / completed など
	Percent   int     `json:"percent" db:"percent"`       // 進捗率 0-100 (検証しない)
	StartDate *string `json:"start_date" db:"start_date"` // 開始日 (任意)
	EndDate   *string `json:"end_date" db:"end_date"`     // 終了日 (任意)
	Notes     *string `json:"notes" db:"notes"`           // メモ (任意)
	UpdatedAt *string `json:"updated_at" db:"updated_at"` // 更新日時 (ローカル時刻)
	Tasks     []Task  `json:"tasks" db:"-"`               // sort_order 順のタスク
}

// CommitteeUpdate は管理画面から送られる編集可能フィールド一式です。
type CommitteeUpdate struct {
	Title     string  `json:"title"`
	Appendix  *string `json:"appendix"`
	Status    string  `json:"status"`
	Percent   int     `json:"percent"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"`
}

// StatusCount はステータスごとの委員会数です。
type StatusCount struct {
	Status string `json:"status" db:"status"`
	Count  int    `json:"count" db:"count"`
}

// Summary はダッシュボード用の集計結果です。
type Summary struct {
	Stats      []StatusCount `json:"stats"`
	AvgPercent int           `json:"avg_percent"`
	Total      int           `json:"total"`
}
