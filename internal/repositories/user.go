package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用

	"committee-tracker/backend/internal/models"
)

// ErrInvalidCredentials はユーザー名またはパスワードが一致しない場合のエラーです。
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminRepository は管理者アカウントのデータベース操作を行います。
type AdminRepository struct {
	DB *sqlx.DB
}

// NewAdminRepository は新しいAdminRepositoryインスタンスを作成します。
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

// prehash はパスワードをSHA-256のhex文字列(64バイト)にします。
// bcryptは72バイトまでしか扱わないため、長さに関係なく全体を比較対象にするために使います。
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), prehash(password))
}

// Create は管理者を作成します。トランザクション内で呼ぶ場合は CreateTx を使います。
func (r *AdminRepository) Create(ctx context.Context, username, password string) (*models.AdminUser, error) {
	return createAdmin(ctx, r.DB, username, password)
}

// CreateTx はトランザクション内で管理者を作成します。
func CreateTx(ctx context.Context, tx *sqlx.Tx, username, password string) (*models.AdminUser, error) {
	return createAdmin(ctx, tx, username, password)
}

func createAdmin(ctx context.Context, ex sqlx.ExecerContext, username, password string) (*models.AdminUser, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	result, err := ex.ExecContext(ctx,
		"INSERT INTO admin_users (username, password) VALUES (?, ?)", username, hash)
	if err != nil {
		return nil, fmt.Errorf("could not insert admin %s: %w", username, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	return &models.AdminUser{ID: int(id), Username: username}, nil
}

// FindByUsername はユーザー名で管理者を検索します。
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.DB.GetContext(ctx, &u,
		"SELECT id, username, password FROM admin_users WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("could not query admin %s: %w", username, err)
	}
	return &u, nil
}

// Authenticate はユーザー名とパスワードが一致する管理者を返します。
func (r *AdminRepository) Authenticate(ctx context.Context, username, password string) (*models.AdminUser, error) {
	u, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	u.PasswordHash = "" // 呼び出し側にハッシュを渡さない
	return u, nil
}

// SetPassword は管理者のパスワードを上書きします。ユーザーが存在しない場合は何もしません。
func (r *AdminRepository) SetPassword(ctx context.Context, username, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE admin_users SET password = ? WHERE username = ?", hash, username); err != nil {
		return fmt.Errorf("could not update password for %s: %w", username, err)
	}
	return nil
}
