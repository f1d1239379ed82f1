package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQueryNoFilter(t *testing.T) {
	query, args := buildListQuery(QuestionFilter{})

	assert.Equal(t, "SELECT id, question, answer, difficulty, category FROM questions ORDER BY id ASC", query)
	assert.Empty(t, args)
}

func TestBuildListQueryCategory(t *testing.T) {
	categoryID := int64(3)
	query, args := buildListQuery(QuestionFilter{CategoryID: &categoryID})

	assert.Contains(t, query, "WHERE category = $1")
	assert.Equal(t, []any{int64(3)}, args)
}

func TestBuildListQuerySearchWrapsTerm(t *testing.T) {
	query, args := buildListQuery(QuestionFilter{Search: "title"})

	assert.Contains(t, query, "question ILIKE $1")
	assert.Equal(t, []any{"%title%"}, args)
}

func TestBuildListQueryExclusion(t *testing.T) {
	query, args := buildListQuery(QuestionFilter{ExcludeIDs: []int64{10, 11}})

	assert.Contains(t, query, "NOT (id = ANY($1))")
	assert.Equal(t, []any{[]int64{10, 11}}, args)
}

func TestBuildListQueryComposesClauses(t *testing.T) {
	categoryID := int64(1)
	query, args := buildListQuery(QuestionFilter{
		CategoryID: &categoryID,
		ExcludeIDs: []int64{10},
	})

	assert.Contains(t, query, "category = $1 AND NOT (id = ANY($2))")
	assert.Len(t, args, 2)
}

func TestBuildListQueryAlwaysOrdersByID(t *testing.T) {
	for _, filter := range []QuestionFilter{
		{},
		{Search: "x"},
		{ExcludeIDs: []int64{1}},
	} {
		query, _ := buildListQuery(filter)
		assert.Contains(t, query, "ORDER BY id ASC")
	}
}
