package repository_test

import (
	"testing"

	"bistro/internal/domains/user/repository"

	"github.com/stretchr/testify/assert"
)

func TestByEmail(t *testing.T) {
	filter := repository.ByEmail("  Chef@Bistro.TEST ")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(users.email = :email)", where)
	assert.Equal(t, map[string]any{"email": "chef@bistro.test"}, args)
}

func TestByID(t *testing.T) {
	filter := repository.ByID("user-1")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(users.id = :id)", where)
	assert.Equal(t, "user-1", args["id"])
}
