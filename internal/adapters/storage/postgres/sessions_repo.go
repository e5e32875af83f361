package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"animal-sos/internal/platform/logger"
	"animal-sos/internal/session"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS session (
		sid    varchar      NOT NULL PRIMARY KEY,
		sess   json         NOT NULL,
		expire timestamp(6) NOT NULL
	);
	CREATE INDEX IF NOT EXISTS "IDX_session_expire" ON session (expire);
`

type SessionOptions struct {
	TTL         time.Duration
	CheckPeriod time.Duration // <= 0 desactiva la purga periódica
	Logger      logger.Logger
	Now         func() time.Time
}

type SessionStore struct {
	db    *sql.DB
	ttl   time.Duration
	now   func() time.Time
	log   logger.Logger
	owned bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ session.Store = (*SessionStore)(nil)

// Connect abre la DB, crea la tabla si falta y arranca la purga. El store cierra la DB en Close.
func Connect(ctx context.Context, dsn string, opts SessionOptions) (*SessionStore, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}
	s := NewSessionStore(db, opts)
	s.owned = true
	return s, nil
}

// NewSessionStore asume que la tabla existe.
func NewSessionStore(db *sql.DB, opts SessionOptions) *SessionStore {
	if opts.TTL <= 0 {
		opts.TTL = session.DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	s := &SessionStore{
		db:   db,
		ttl:  opts.TTL,
		now:  opts.Now,
		log:  opts.Logger,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	if opts.CheckPeriod > 0 {
		go s.pruneLoop(opts.CheckPeriod)
	} else {
		close(s.done)
	}
	return s
}

func (s *SessionStore) Get(ctx context.Context, sid string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT sess FROM session
		WHERE sid = $1 AND expire > $2
	`, sid, s.now().UTC()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select session: %w", err)
	}
	return data, true, nil
}

func (s *SessionStore) Set(ctx context.Context, sid string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (sid, sess, expire)
		VALUES ($1, $2, $3)
		ON CONFLICT (sid) DO UPDATE
		SET sess = EXCLUDED.sess, expire = EXCLUDED.expire
	`, sid, data, s.now().UTC().Add(s.ttl))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE sid = $1`, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Prune borra las sesiones vencidas.
func (s *SessionStore) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE expire <= $1`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *SessionStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	if s.owned {
		return s.db.Close()
	}
	return nil
}

func (s *SessionStore) pruneLoop(every time.Duration) {
	defer close(s.done)

	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			n, err := s.Prune(ctx)
			cancel()
			if err != nil {
				s.log.Warn("session prune failed", map[string]any{"error": err.Error()})
				continue
			}
			if n > 0 {
				s.log.Debug("sessions pruned", map[string]any{"count": n})
			}
		case <-s.stop:
			return
		}
	}
}
