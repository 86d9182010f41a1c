// File path: internal/sqlite/affirmations.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nicodishanthj/affirmd/internal/model"
)

// ListAffirmations returns every affirmation ordered by rank.
func (s *Store) ListAffirmations(ctx context.Context) ([]model.Affirmation, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	defer observe("affirmations.list", time.Now())
	rows := []affirmationRow{}
	query := `SELECT ` + affirmationColumns + ` FROM affirmations ORDER BY sort_order, created_at`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, storeErr("select affirmations", err)
	}
	out := make([]model.Affirmation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// AffirmationByID loads a single affirmation.
func (s *Store) AffirmationByID(ctx context.Context, id string) (model.Affirmation, error) {
	if err := s.ensureReady(); err != nil {
		return model.Affirmation{}, err
	}
	return getAffirmation(ctx, s.db, id)
}

func getAffirmation(ctx context.Context, q sqlx.QueryerContext, id string) (model.Affirmation, error) {
	var row affirmationRow
	err := sqlx.GetContext(ctx, q, &row, `SELECT `+affirmationColumns+` FROM affirmations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Affirmation{}, fmt.Errorf("affirmation %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Affirmation{}, storeErr("select affirmation", err)
	}
	return row.toModel(), nil
}

// MaxAffirmationOrder returns the highest rank in use. The boolean is false
// when the collection is empty.
func (s *Store) MaxAffirmationOrder(ctx context.Context) (int, bool, error) {
	if err := s.ensureReady(); err != nil {
		return 0, false, err
	}
	var value sql.NullInt64
	if err := s.db.GetContext(ctx, &value, `SELECT MAX(sort_order) FROM affirmations`); err != nil {
		return 0, false, storeErr("select max order", err)
	}
	if !value.Valid {
		return 0, false, nil
	}
	return int(value.Int64), true, nil
}

// CountAffirmations returns the number of stored affirmations.
func (s *Store) CountAffirmations(ctx context.Context) (int, error) {
	if err := s.ensureReady(); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM affirmations`); err != nil {
		return 0, storeErr("count affirmations", err)
	}
	return count, nil
}

// CountExampleAffirmations returns the number of seeded examples.
func (s *Store) CountExampleAffirmations(ctx context.Context) (int, error) {
	if err := s.ensureReady(); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM affirmations WHERE is_example = 1`); err != nil {
		return 0, storeErr("count example affirmations", err)
	}
	return count, nil
}

// InsertAffirmations stores the given affirmations in a single transaction.
func (s *Store) InsertAffirmations(ctx context.Context, affirmations ...model.Affirmation) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if len(affirmations) == 0 {
		return nil
	}
	defer observe("affirmations.insert", time.Now())
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, a := range affirmations {
			if _, err := tx.ExecContext(ctx, `INSERT INTO affirmations(`+affirmationColumns+`) VALUES(?, ?, ?, ?, ?)`,
				a.ID, a.Text, a.Order, a.IsExample, a.CreatedAt); err != nil {
				return fmt.Errorf("insert affirmation %s: %w", a.ID, err)
			}
		}
		return nil
	})
	return storeErr("insert affirmations", err)
}

// UpdateAffirmation applies the supplied fields and returns the updated record.
func (s *Store) UpdateAffirmation(ctx context.Context, id string, text *string, order *int) (model.Affirmation, error) {
	if err := s.ensureReady(); err != nil {
		return model.Affirmation{}, err
	}
	sets := []string{}
	args := []interface{}{}
	if text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *text)
	}
	if order != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *order)
	}
	if len(sets) == 0 {
		return model.Affirmation{}, fmt.Errorf("%w: no fields to update", model.ErrInvalidArgument)
	}
	args = append(args, id)
	defer observe("affirmations.update", time.Now())
	var updated model.Affirmation
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE affirmations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return fmt.Errorf("update affirmation: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update affirmation rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("affirmation %s: %w", id, model.ErrNotFound)
		}
		updated, err = getAffirmation(ctx, tx, id)
		return err
	})
	if err != nil {
		return model.Affirmation{}, storeErr("update affirmation", err)
	}
	return updated, nil
}

// DeleteAffirmation removes one affirmation.
func (s *Store) DeleteAffirmation(ctx context.Context, id string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	defer observe("affirmations.delete", time.Now())
	res, err := s.db.ExecContext(ctx, `DELETE FROM affirmations WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete affirmation", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete affirmation rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("affirmation %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// ReorderAffirmations sets each id's rank to its index in ids inside one
// transaction. Unknown ids are skipped; the number of updated rows is returned.
func (s *Store) ReorderAffirmations(ctx context.Context, ids []string) (int, error) {
	if err := s.ensureReady(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	defer observe("affirmations.reorder", time.Now())
	updated := 0
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, `UPDATE affirmations SET sort_order = ? WHERE id = ?`)
		if err != nil {
			return fmt.Errorf("prepare reorder: %w", err)
		}
		defer stmt.Close()
		for idx, id := range ids {
			res, err := stmt.ExecContext(ctx, idx, id)
			if err != nil {
				return fmt.Errorf("reorder %s: %w", id, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("reorder rows: %w", err)
			}
			updated += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, storeErr("reorder affirmations", err)
	}
	return updated, nil
}
