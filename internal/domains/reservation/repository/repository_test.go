package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bistro/internal/domains/reservation/model"
	"bistro/internal/domains/reservation/repository"
)

func TestFilterOverlapping(t *testing.T) {
	day := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	start := day.Add(19 * time.Hour)
	end := day.Add(21 * time.Hour)

	filter := repository.FilterOverlapping(4, day, start, end)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "reservations.starts_at < :requested_end")
	assert.Contains(t, where, "reservations.ends_at > :requested_start")
	assert.Contains(t, where, "reservations.status != :status")
	assert.Equal(t, 4, args[model.FieldTableNumber])
	assert.Equal(t, end, args["requested_end"])
	assert.Equal(t, start, args["requested_start"])
	assert.Equal(t, model.StatusCancelled, args[model.FieldStatus])
}
