package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/battle"
	"github.com/cory-johannsen/quackbattle/internal/game/combat"
)

// ErrBattleNotFound is returned when a battle lookup yields no results.
var ErrBattleNotFound = errors.New("battle not found")

// ErrBattleExists is returned when a result with the same id was already recorded.
var ErrBattleExists = errors.New("battle already recorded")

// BattleSummary is one row of the battle history listing.
type BattleSummary struct {
	ID         uuid.UUID
	Outcome    combat.Outcome
	Segment    int
	Turns      int
	ScoreAfter int
	EndedAt    time.Time
}

// BattleRepository records finished encounters. It implements battle.Recorder.
type BattleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; logger must be non-nil.
func NewBattleRepository(db *pgxpool.Pool, logger *zap.Logger) *BattleRepository {
	return &BattleRepository{db: db, logger: logger}
}

// Record inserts r and its awards in one transaction.
//
// Postcondition: Returns ErrBattleExists when r.ID was recorded before; nothing
// is written on any error.
func (r *BattleRepository) Record(ctx context.Context, res battle.Result) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO battles
				(id, outcome, segment, turns, xp_pool, drop_id,
				 score_before, score_after, messages, started_at, ended_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			res.ID, res.Outcome.String(), res.Segment, res.Turns, res.XPPool, res.Drop,
			res.ScoreBefore, res.ScoreAfter, messagesOrEmpty(res.Messages), res.StartedAt, res.EndedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return ErrBattleExists
			}
			return fmt.Errorf("inserting battle: %w", err)
		}

		batch := &pgx.Batch{}
		for i, a := range res.Awards {
			batch.Queue(`
				INSERT INTO battle_awards (battle_id, position, agent, xp, levels_gained)
				VALUES ($1,$2,$3,$4,$5)`,
				res.ID, i, a.Agent, a.XP, a.LevelsGained,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting awards: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Debug("battle recorded",
		zap.String("battle", res.ID.String()),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("awards", len(res.Awards)),
	)
	return nil
}

// Get retrieves a recorded battle with its awards.
//
// Postcondition: Returns the Result or ErrBattleNotFound.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (*battle.Result, error) {
	var (
		res     battle.Result
		outcome string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, outcome, segment, turns, xp_pool, drop_id,
		       score_before, score_after, messages, started_at, ended_at
		FROM battles WHERE id = $1`,
		id,
	).Scan(
		&res.ID, &outcome, &res.Segment, &res.Turns, &res.XPPool, &res.Drop,
		&res.ScoreBefore, &res.ScoreAfter, &res.Messages, &res.StartedAt, &res.EndedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("querying battle: %w", err)
	}
	if res.Outcome, err = parseOutcome(outcome); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT agent, xp, levels_gained
		FROM battle_awards WHERE battle_id = $1 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying awards: %w", err)
	}
	res.Awards, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (battle.Award, error) {
		var a battle.Award
		err := row.Scan(&a.Agent, &a.XP, &a.LevelsGained)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning award row: %w", err)
	}
	return &res, nil
}

// Recent lists up to limit battles, newest first.
//
// Precondition: limit > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *BattleRepository) Recent(ctx context.Context, limit int) ([]BattleSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, outcome, segment, turns, score_after, ended_at
		FROM battles ORDER BY ended_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing battles: %w", err)
	}
	defer rows.Close()

	out := make([]BattleSummary, 0)
	for rows.Next() {
		var (
			s       BattleSummary
			outcome string
		)
		if err := rows.Scan(&s.ID, &outcome, &s.Segment, &s.Turns, &s.ScoreAfter, &s.EndedAt); err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		if s.Outcome, err = parseOutcome(outcome); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// BestScore returns the highest score reached after any recorded battle, or
// zero when none are recorded.
func (r *BattleRepository) BestScore(ctx context.Context) (int, error) {
	var best int
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(score_after), 0) FROM battles`).Scan(&best); err != nil {
		return 0, fmt.Errorf("querying best score: %w", err)
	}
	return best, nil
}

func parseOutcome(s string) (combat.Outcome, error) {
	for _, o := range []combat.Outcome{combat.Ongoing, combat.Win, combat.Lose} {
		if o.String() == s {
			return o, nil
		}
	}
	return combat.Ongoing, fmt.Errorf("unknown battle outcome %q", s)
}

func messagesOrEmpty(m []string) []string {
	if m == nil {
		return []string{}
	}
	return m
}

// isDuplicateKeyError reports whether err carries SQLSTATE 23505 (unique_violation).
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
