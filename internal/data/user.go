package data

import (
	"context"
	"database/sql"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/biolens-ai/bioradar/internal/biz"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *userRepo) CreateUser(ctx context.Context, u *biz.User) error {
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
		u.Username, u.PasswordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		// 23505: unique_violation
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return kerrors.Conflict("USER_EXISTS", "username already taken")
		}
		return err
	}
	return nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*biz.User, error) {
	var u biz.User
	err := r.data.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kerrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		return nil, err
	}
	return &u, nil
}
