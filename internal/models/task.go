package models

// Task は委員会に属するチェックリスト項目です。
type Task struct {
	ID          int    `json:"id" db:"id"`
	CommitteeID int    `json:"committee_id" db:"committee_id"`
	Text        string `json:"text" db:"text"`
	Done        bool   `json:"done" db:"done"` // DBでは 0/1
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}

// TaskInput はタスク一覧置き換え時の1項目です。並び順は配列の順番で決まります。
type TaskInput struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// ReplaceTasksRequest は PUT /api/admin/committees/:id/tasks のリクエストボディです。
type ReplaceTasksRequest struct {
	Tasks []TaskInput `json:"tasks"`
}
