package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// QuestionFilter composes the supported restrictions on a question
// listing. Zero values mean "no restriction"; every listing is ordered
// by id ascending.
type QuestionFilter struct {
	CategoryID *int64
	Search     string
	ExcludeIDs []int64
}

// QuestionRepository persists and retrieves question records.
type QuestionRepository struct {
	db querier
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(db querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns the questions matching filter, ordered by id ascending.
func (r *QuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]trivia.Question, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}

// buildListQuery composes the WHERE clauses for filter. The exclusion
// uses NOT (id = ANY(...)) so the candidate restriction happens in the
// store, before any selection index is drawn.
func buildListQuery(filter QuestionFilter) (string, []any) {
	query := `SELECT id, question, answer, difficulty, category FROM questions`

	var clauses []string
	var args []any
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("question ILIKE $%d", len(args)))
	}
	if len(filter.ExcludeIDs) > 0 {
		args = append(args, filter.ExcludeIDs)
		clauses = append(clauses, fmt.Sprintf("NOT (id = ANY($%d))", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query + " ORDER BY id ASC", args
}

func (r *QuestionRepository) ListAll(ctx context.Context) ([]trivia.Question, error) {
	return r.List(ctx, QuestionFilter{})
}

func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	return r.List(ctx, QuestionFilter{CategoryID: &categoryID})
}

func (r *QuestionRepository) SearchByText(ctx context.Context, term string) ([]trivia.Question, error) {
	return r.List(ctx, QuestionFilter{Search: term})
}

func (r *QuestionRepository) ListCandidates(ctx context.Context, categoryID *int64, excludeIDs []int64) ([]trivia.Question, error) {
	return r.List(ctx, QuestionFilter{CategoryID: categoryID, ExcludeIDs: excludeIDs})
}

// Insert persists q and returns the store-assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, q trivia.NewQuestion) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO questions (question, answer, difficulty, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		q.Question, q.Answer, q.Difficulty, q.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

// DeleteByID removes the record if present and reports whether a row
// was found. An absent id is not an error at this layer.
func (r *QuestionRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete question %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the total number of questions in the bank.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}
