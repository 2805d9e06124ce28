package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bistro/internal/domains/offer/repository"
)

func TestFilterActiveOn(t *testing.T) {
	day := time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)

	filter := repository.FilterActiveOn(day)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(offers.start_date <= :active_from AND offers.end_date >= :active_until)", where)
	assert.Equal(t, day, args["active_from"])
	assert.Equal(t, day, args["active_until"])
}
