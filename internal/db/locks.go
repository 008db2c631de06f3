// (RemediationType, source) 키에 대한 교차 호출 상호배제 잠금
//
// 어드바이저리 락 대신 조건부 INSERT를 사용하는 이유:
//   - 잠금에 TTL을 부여해 비정상 종료된 호출이 키를 영원히 점유하는 상황 방지
//   - 만료된 잠금은 다음 호출이 한 문장으로 탈취 가능

package db

import (
	"context"
	"time"
)

// EnsureLockSchema - remediation_locks 테이블 생성
func (db *Postgres) EnsureLockSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS remediation_locks (
			lock_key TEXT PRIMARY KEY,
			acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`
	_, err := db.Pool.Exec(ctx, query)
	return err
}

// TryAcquire - 키 잠금 획득 시도 (비차단)
// 새 키이거나 기존 잠금이 만료된 경우에만 성공
func (db *Postgres) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO remediation_locks (lock_key, acquired_at, expires_at)
		VALUES ($1, NOW(), $2)
		ON CONFLICT (lock_key) DO UPDATE SET
			acquired_at = NOW(),
			expires_at = EXCLUDED.expires_at
		WHERE remediation_locks.expires_at < NOW()
	`

	tag, err := db.Pool.Exec(ctx, query, key, time.Now().Add(ttl))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Release - 키 잠금 해제
// 이미 만료/삭제된 키에 대한 해제는 no-op
func (db *Postgres) Release(ctx context.Context, key string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM remediation_locks WHERE lock_key = $1`, key)
	return err
}
