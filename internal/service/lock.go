// (타입, 소스) 키 상호배제 잠금 인터페이스 및 인메모리 구현
//
// 운영 환경에서는 Postgres 잠금 테이블(internal/db)을 사용하고,
// DB 없이 기동한 경우와 테스트에서는 인메모리 구현을 사용
// 인메모리 잠금은 프로세스 간 상호배제를 제공하지 못함 (기동 시 로그로 경고)

package service

import (
	"context"
	"sync"
	"time"
)

// Locker - 키 잠금 제공자 인터페이스
// TryAcquire는 비차단: 획득 실패는 "이미 진행 중"을 의미하며 에러가 아님
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// MemoryLocker - 단일 프로세스용 인메모리 잠금
type MemoryLocker struct {
	mu    sync.Mutex
	holds map[string]time.Time // key -> 만료 시각
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{holds: make(map[string]time.Time)}
}

func (l *MemoryLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, held := l.holds[key]; held && now.Before(expiry) {
		return false, nil
	}
	l.holds[key] = now.Add(ttl)
	return true, nil
}

func (l *MemoryLocker) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.holds, key)
	return nil
}
