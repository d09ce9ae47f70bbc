// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"committee-tracker/backend/internal/models"
)

// ErrCommitteeNotFound は委員会が見つからない場合のエラーです。
var ErrCommitteeNotFound = errors.New("committee not found")

const committeeColumns = "id, title, appendix, status, percent, start_date, end_date, notes, updated_at"

// CommitteeRepository は委員会とタスクのデータベース操作を行います。
type CommitteeRepository struct {
	DB *sqlx.DB
}

// NewCommitteeRepository は新しいCommitteeRepositoryインスタンスを作成します。
func NewCommitteeRepository(db *sqlx.DB) *CommitteeRepository {
	return &CommitteeRepository{DB: db}
}

// FindAll はすべての委員会をID順に取得し、タスクを sort_order 順で付与します。
func (r *CommitteeRepository) FindAll(ctx context.Context) ([]models.Committee, error) {
	committees := []models.Committee{}
	if err := r.DB.SelectContext(ctx, &committees,
		"SELECT "+committeeColumns+" FROM committees ORDER BY id"); err != nil {
		return nil, fmt.Errorf("could not query committees: %w", err)
	}

	var tasks []models.Task
	if err := r.DB.SelectContext(ctx, &tasks,
		"SELECT id, committee_id, text, done, sort_order FROM tasks ORDER BY committee_id, sort_order, id"); err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}

	byCommittee := make(map[int][]models.Task, len(committees))
	for _, t := range tasks {
		byCommittee[t.CommitteeID] = append(byCommittee[t.CommitteeID], t)
	}
	for i := range committees {
		committees[i].Tasks = byCommittee[committees[i].ID]
		if committees[i].Tasks == nil {
			committees[i].Tasks = []models.Task{}
		}
	}
	return committees, nil
}

// FindByID は指定IDの委員会をタスク付きで取得します。
func (r *CommitteeRepository) FindByID(ctx context.Context, id int) (*models.Committee, error) {
	var c models.Committee
	err := r.DB.GetContext(ctx, &c, "SELECT "+committeeColumns+" FROM committees WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommitteeNotFound
		}
		return nil, fmt.Errorf("could not query committee %d: %w", id, err)
	}

	c.Tasks = []models.Task{}
	if err := r.DB.SelectContext(ctx, &c.Tasks,
		"SELECT id, committee_id, text, done, sort_order FROM tasks WHERE committee_id = ? ORDER BY sort_order, id", id); err != nil {
		return nil, fmt.Errorf("could not query tasks for committee %d: %w", id, err)
	}
	return &c, nil
}

// Summary はステータス別の件数と平均進捗率を集計します。
func (r *CommitteeRepository) Summary(ctx context.Context) (*models.Summary, error) {
	stats := []models.StatusCount{}
	if err := r.DB.SelectContext(ctx, &stats,
		"SELECT status, COUNT(*) AS count FROM committees GROUP BY status"); err != nil {
		return nil, fmt.Errorf("could not count committees by status: %w", err)
	}

	var avg sql.NullFloat64
	if err := r.DB.GetContext(ctx, &avg, "SELECT AVG(percent) FROM committees"); err != nil {
		return nil, fmt.Errorf("could not average percent: %w", err)
	}

	s := &models.Summary{Stats: stats, Total: models.TotalCommittees}
	if avg.Valid {
		s.AvgPercent = int(math.Round(avg.Float64))
	}
	return s, nil
}

// Update は委員会の編集可能フィールドを上書きし、updated_at を現在のローカル時刻にします。
// 存在しないIDの場合は何もしません。
func (r *CommitteeRepository) Update(ctx context.Context, id int, u models.CommitteeUpdate) error {
	query := `UPDATE committees SET
		title = ?, appendix = ?, status = ?, percent = ?,
		start_date = ?, end_date = ?, notes = ?,
		updated_at = datetime('now', 'localtime')
	WHERE id = ?`

	_, err := r.DB.ExecContext(ctx, query,
		u.Title, u.Appendix, u.Status, u.Percent,
		u.StartDate, u.EndDate, u.Notes,
		id,
	)
	if err != nil {
		return fmt.Errorf("could not update committee %d: %w", id, err)
	}
	return nil
}

// ReplaceTasks は委員会のタスクを全削除し、渡された順番で挿入し直します。
// 1つのトランザクションで実行されるため、途中で失敗しても元のタスクが残ります。
func (r *CommitteeRepository) ReplaceTasks(ctx context.Context, committeeID int, tasks []models.TaskInput) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE committee_id = ?", committeeID); err != nil {
		return fmt.Errorf("could not delete tasks for committee %d: %w", committeeID, err)
	}

	if err := insertTasks(ctx, tx, committeeID, tasks); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete は委員会を削除します。タスクは外部キーのカスケードで削除されます。
func (r *CommitteeRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM committees WHERE id = ?", id); err != nil {
		return fmt.Errorf("could not delete committee %d: %w", id, err)
	}
	return nil
}

// InsertCommittee は委員会を1件挿入します。IDは呼び出し側が決めます。
func InsertCommittee(ctx context.Context, tx *sqlx.Tx, c models.Committee) error {
	status := c.Status
	if status == "" {
		status = models.StatusNotStarted
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO committees (id, title, appendix, status, percent, start_date, end_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Appendix, status, c.Percent, c.StartDate, c.EndDate, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("could not insert committee %d: %w", c.ID, err)
	}
	return insertTasks(ctx, tx, c.ID, taskInputs(c.Tasks))
}

func insertTasks(ctx context.Context, tx *sqlx.Tx, committeeID int, tasks []models.TaskInput) error {
	if len(tasks) == 0 {
		return nil
	}

	stmt, err := tx.PreparexContext(ctx,
		"INSERT INTO tasks (committee_id, text, done, sort_order) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, committeeID, t.Text, boolToInt(t.Done), i); err != nil {
			return fmt.Errorf("could not insert task %d for committee %d: %w", i, committeeID, err)
		}
	}
	return nil
}

func taskInputs(tasks []models.Task) []models.TaskInput {
	in := make([]models.TaskInput, len(tasks))
	for i, t := range tasks {
		in[i] = models.TaskInput{Text: t.Text, Done: t.Done}
	}
	return in
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
