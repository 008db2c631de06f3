// 복구 결과 및 채널 전송 기록 감사 저장소

package db

import (
	"context"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// EnsureAuditSchema - remediation_outcomes, delivery_records 테이블 생성
func (db *Postgres) EnsureAuditSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS remediation_outcomes (
			outcome_id TEXT PRIMARY KEY,
			remediation_type TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			attempted BOOLEAN NOT NULL,
			succeeded BOOLEAN NOT NULL,
			error_detail TEXT NOT NULL DEFAULT '',
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS remediation_outcomes_created_at_idx ON remediation_outcomes(created_at DESC)`,
		`
		CREATE TABLE IF NOT EXISTS delivery_records (
			delivery_id TEXT PRIMARY KEY,
			channel TEXT NOT NULL,
			alert_title TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT 'info',
			succeeded BOOLEAN NOT NULL,
			attempts INT NOT NULL DEFAULT 1,
			error_detail TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS delivery_records_created_at_idx ON delivery_records(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// SaveOutcome - 복구 결과 1건 저장
func (db *Postgres) SaveOutcome(ctx context.Context, o model.RemediationOutcome) error {
	query := `
		INSERT INTO remediation_outcomes (
			outcome_id, remediation_type, source, attempted, succeeded,
			error_detail, duration_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (outcome_id) DO NOTHING
	`

	_, err := db.Pool.Exec(ctx, query,
		o.ID,
		string(o.Type),
		o.Source,
		o.Attempted,
		o.Succeeded,
		o.ErrorDetail,
		o.DurationMs,
		o.CreatedAt,
	)
	return err
}

// ListOutcomes - 최근 복구 결과 조회
func (db *Postgres) ListOutcomes(ctx context.Context, limit int) ([]model.RemediationOutcome, error) {
	query := `
		SELECT outcome_id, remediation_type, source, attempted, succeeded, error_detail, duration_ms, created_at
		FROM remediation_outcomes
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RemediationOutcome
	for rows.Next() {
		var o model.RemediationOutcome
		var typ string
		if err := rows.Scan(&o.ID, &typ, &o.Source, &o.Attempted, &o.Succeeded, &o.ErrorDetail, &o.DurationMs, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Type = model.RemediationType(typ)
		list = append(list, o)
	}

	if list == nil {
		list = []model.RemediationOutcome{}
	}
	return list, rows.Err()
}

// SaveDelivery - 채널 전송 기록 1건 저장
func (db *Postgres) SaveDelivery(ctx context.Context, r model.DeliveryRecord) error {
	query := `
		INSERT INTO delivery_records (
			delivery_id, channel, alert_title, source, severity,
			succeeded, attempts, error_detail, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (delivery_id) DO NOTHING
	`

	_, err := db.Pool.Exec(ctx, query,
		r.ID,
		string(r.Channel),
		r.AlertTitle,
		r.Source,
		string(r.Severity),
		r.Succeeded,
		r.Attempts,
		r.ErrorDetail,
		r.CreatedAt,
	)
	return err
}

// ListDeliveries - 최근 전송 기록 조회
func (db *Postgres) ListDeliveries(ctx context.Context, limit int) ([]model.DeliveryRecord, error) {
	query := `
		SELECT delivery_id, channel, alert_title, source, severity, succeeded, attempts, error_detail, created_at
		FROM delivery_records
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.DeliveryRecord
	for rows.Next() {
		var r model.DeliveryRecord
		var channel, severity string
		if err := rows.Scan(&r.ID, &channel, &r.AlertTitle, &r.Source, &severity, &r.Succeeded, &r.Attempts, &r.ErrorDetail, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Channel = model.Channel(channel)
		r.Severity = model.Severity(severity)
		list = append(list, r)
	}

	if list == nil {
		list = []model.DeliveryRecord{}
	}
	return list, rows.Err()
}
