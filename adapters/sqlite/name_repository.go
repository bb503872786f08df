package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"qiming/domain/history"
	"qiming/internal/errors"
	"qiming/ports"
)

// NameRepository persists generated names in sqlite.
type NameRepository struct {
	db *sqlx.DB
}

func NewNameRepository(db *sqlx.DB) *NameRepository {
	return &NameRepository{db: db}
}

const insertNameSQL = `
	INSERT INTO generated_names (
		session_id, user_id, surname, gender, birth_date, preferences, sources,
		fixed_char, fixed_position, full_name, first_name,
		score_total, score_wuxing, score_yinlu, score_zixing, score_yuyi,
		grade, score_breakdown, source, source_detail, is_favorite, notes,
		created_at, updated_at
	) VALUES (
		:session_id, :user_id, :surname, :gender, :birth_date, :preferences, :sources,
		:fixed_char, :fixed_position, :full_name, :first_name,
		:score_total, :score_wuxing, :score_yinlu, :score_zixing, :score_yuyi,
		:grade, :score_breakdown, :source, :source_detail, :is_favorite, :notes,
		:created_at, :updated_at
	)`

// recordColumns is the dedup-aware projection: the favorite flag comes
// from the whole logical group.
const recordColumns = `
	id, session_id, user_id, surname, gender, birth_date, preferences, sources,
	fixed_char, fixed_position, full_name, first_name,
	score_total, score_wuxing, score_yinlu, score_zixing, score_yuyi,
	grade, score_breakdown, source, source_detail,
	CASE WHEN group_favorite = 1 THEN 1 ELSE 0 END AS is_favorite,
	notes, created_at, updated_at`

const rankedCTE = `
	WITH owned AS (
		SELECT * FROM generated_names WHERE %s
	),
	ranked AS (
		SELECT *,
			ROW_NUMBER() OVER (PARTITION BY surname, first_name ORDER BY created_at ASC, id ASC) AS rn,
			MAX(CASE WHEN is_favorite THEN 1 ELSE 0 END) OVER (PARTITION BY surname, first_name) AS group_favorite
		FROM owned
	)`

// ownerClause scopes a query to the identity. Session rows claimed by a
// user are no longer visible to the bare session.
func ownerClause(id history.Identity) (string, []interface{}) {
	if id.UserID != nil {
		return "user_id = ?", []interface{}{*id.UserID}
	}
	return "session_id = ? AND user_id IS NULL", []interface{}{id.SessionID}
}

func stamp(rec *history.Record) {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}

func (r *NameRepository) Insert(ctx context.Context, rec *history.Record) error {
	stamp(rec)
	res, err := r.db.NamedExecContext(ctx, insertNameSQL, rec)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "inserting generated name")
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

func (r *NameRepository) InsertBatch(ctx context.Context, recs []*history.Record) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "starting insert batch")
	}
	defer tx.Rollback()

	for _, rec := range recs {
		stamp(rec)
		res, err := tx.NamedExecContext(ctx, insertNameSQL, rec)
		if err != nil {
			return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "inserting generated name batch")
		}
		if id, err := res.LastInsertId(); err == nil {
			rec.ID = id
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "committing insert batch")
	}
	return nil
}

func (r *NameRepository) List(ctx context.Context, id history.Identity, opts history.ListOptions) ([]history.Record, int, error) {
	owner, args := ownerClause(id)

	favCond := ""
	if opts.OnlyFavorites {
		favCond = "AND group_favorite = 1"
	}
	query := fmt.Sprintf(rankedCTE+`
		SELECT `+recordColumns+`
		FROM ranked
		WHERE rn = 1 %s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, owner, favCond)

	listArgs := append(append([]interface{}{}, args...), opts.Limit, opts.Offset)
	var records []history.Record
	if err := r.db.SelectContext(ctx, &records, query, listArgs...); err != nil {
		return nil, 0, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "listing history")
	}

	countQuery := fmt.Sprintf(rankedCTE+`
		SELECT COUNT(*) FROM ranked WHERE rn = 1 %s`, owner, favCond)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "counting history")
	}
	return records, total, nil
}

// groupKey locates the logical group of a physical row, scoped to the
// owner.
func groupKey(ctx context.Context, tx *sqlx.Tx, recordID int64, id history.Identity) (surname, firstName string, err error) {
	owner, args := ownerClause(id)
	query := fmt.Sprintf("SELECT surname, first_name FROM generated_names WHERE id = ? AND %s", owner)
	row := struct {
		Surname   string `db:"surname"`
		FirstName string `db:"first_name"`
	}{}
	err = tx.GetContext(ctx, &row, query, append([]interface{}{recordID}, args...)...)
	if err == sql.ErrNoRows {
		return "", "", errors.NotFound("record")
	}
	if err != nil {
		return "", "", errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "locating record")
	}
	return row.Surname, row.FirstName, nil
}

func (r *NameRepository) ToggleFavorite(ctx context.Context, recordID int64, id history.Identity) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "starting toggle")
	}
	defer tx.Rollback()

	surname, firstName, err := groupKey(ctx, tx, recordID, id)
	if err != nil {
		return false, err
	}

	owner, args := ownerClause(id)
	var current int
	curQuery := fmt.Sprintf(`
		SELECT COALESCE(MAX(CASE WHEN is_favorite THEN 1 ELSE 0 END), 0)
		FROM generated_names WHERE %s AND surname = ? AND first_name = ?`, owner)
	if err := tx.GetContext(ctx, &current, curQuery, append(append([]interface{}{}, args...), surname, firstName)...); err != nil {
		return false, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "reading favorite state")
	}
	newValue := current == 0

	updQuery := fmt.Sprintf(`
		UPDATE generated_names SET is_favorite = ?, updated_at = ?
		WHERE %s AND surname = ? AND first_name = ?`, owner)
	updArgs := append([]interface{}{newValue, time.Now().UTC()}, args...)
	updArgs = append(updArgs, surname, firstName)
	if _, err := tx.ExecContext(ctx, updQuery, updArgs...); err != nil {
		return false, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "toggling favorite")
	}
	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "committing toggle")
	}
	return newValue, nil
}

func (r *NameRepository) Annotate(ctx context.Context, recordID int64, note string, id history.Identity) error {
	owner, args := ownerClause(id)
	query := fmt.Sprintf(`
		UPDATE generated_names SET notes = ?, updated_at = ?
		WHERE id = ? AND %s`, owner)
	res, err := r.db.ExecContext(ctx, query, append([]interface{}{note, time.Now().UTC(), recordID}, args...)...)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "annotating record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("record")
	}
	return nil
}

func (r *NameRepository) Delete(ctx context.Context, recordID int64, id history.Identity) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "starting delete")
	}
	defer tx.Rollback()

	surname, firstName, err := groupKey(ctx, tx, recordID, id)
	if err != nil {
		return err
	}

	owner, args := ownerClause(id)
	query := fmt.Sprintf("DELETE FROM generated_names WHERE %s AND surname = ? AND first_name = ?", owner)
	if _, err := tx.ExecContext(ctx, query, append(append([]interface{}{}, args...), surname, firstName)...); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "deleting record group")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "committing delete")
	}
	return nil
}

func (r *NameRepository) Stats(ctx context.Context, id history.Identity) (*history.Stats, error) {
	owner, args := ownerClause(id)

	agg := struct {
		Total     int     `db:"total"`
		Favorites int     `db:"favorites"`
		AvgScore  float64 `db:"avg_score"`
	}{}
	aggQuery := fmt.Sprintf(rankedCTE+`
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN group_favorite = 1 THEN 1 ELSE 0 END), 0) AS favorites,
			COALESCE(AVG(score_total), 0) AS avg_score
		FROM ranked WHERE rn = 1`, owner)
	if err := r.db.GetContext(ctx, &agg, aggQuery, args...); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "aggregating history stats")
	}

	type sourceCount struct {
		Source string `db:"source"`
		Count  int    `db:"count"`
	}
	var counts []sourceCount
	srcQuery := fmt.Sprintf(rankedCTE+`
		SELECT source, COUNT(*) AS count
		FROM ranked WHERE rn = 1 GROUP BY source`, owner)
	if err := r.db.SelectContext(ctx, &counts, srcQuery, args...); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "counting history sources")
	}
	bySources := make(map[string]int, len(counts))
	for _, c := range counts {
		bySources[c.Source] = c.Count
	}

	return &history.Stats{
		Total:     agg.Total,
		Favorites: agg.Favorites,
		AvgScore:  agg.AvgScore,
		BySources: bySources,
	}, nil
}

func (r *NameRepository) Migrate(ctx context.Context, sessionID string, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE generated_names SET user_id = ?, updated_at = ?
		WHERE session_id = ? AND user_id IS NULL`,
		userID, time.Now().UTC(), sessionID)
	if err != nil {
		return 0, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "migrating session history")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "counting migrated rows")
	}
	return n, nil
}

var _ ports.NameRepository = (*NameRepository)(nil)
