package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/biolens-ai/bioradar/internal/biz"
	"github.com/biolens-ai/bioradar/internal/domain"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportRepo(data *Data, logger log.Logger) biz.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reportRepo) SaveReport(ctx context.Context, rec *biz.ReportRecord) error {
	inputJSON, err := json.Marshal(rec.Input)
	if err != nil {
		return err
	}
	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return err
	}
	_, err = r.data.db.ExecContext(ctx,
		`INSERT INTO reports (id, username, input, markdown, report) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.Username, inputJSON, rec.Markdown, reportJSON,
	)
	return err
}

func (r *reportRepo) ListReports(ctx context.Context, username string, page, pageSize int) ([]*biz.ReportSummary, int, error) {
	offset := (page - 1) * pageSize

	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, created_at FROM reports WHERE username = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		username, pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*biz.ReportSummary
	for rows.Next() {
		var id string
		var createdAt time.Time
		if err := rows.Scan(&id, &createdAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, &biz.ReportSummary{
			ID:        id,
			CreatedAt: createdAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reports WHERE username = $1`, username,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *reportRepo) GetReport(ctx context.Context, id, username string) (*biz.ReportRecord, error) {
	var (
		inputJSON  []byte
		reportJSON []byte
		markdown   string
		createdAt  time.Time
	)
	err := r.data.db.QueryRowContext(ctx,
		`SELECT input, markdown, report, created_at FROM reports WHERE id = $1 AND username = $2`,
		id, username,
	).Scan(&inputJSON, &markdown, &reportJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kerrors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return nil, err
	}

	rec := &biz.ReportRecord{
		ID:        id,
		Username:  username,
		Markdown:  markdown,
		CreatedAt: createdAt.Format("2006-01-02 15:04:05"),
	}
	var input domain.BiomarkerInput
	if err := json.Unmarshal(inputJSON, &input); err != nil {
		return nil, err
	}
	rec.Input = &input
	report := domain.NewBiomarkerReport()
	if err := json.Unmarshal(reportJSON, report); err != nil {
		return nil, err
	}
	rec.Report = report

	return rec, nil
}
