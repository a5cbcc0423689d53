package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	u := &UserModel{UserName: "jdoe", FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", u.DisplayName())

	u = &UserModel{UserName: "jdoe", FirstName: "Jane"}
	assert.Equal(t, "Jane", u.DisplayName())

	u = &UserModel{UserName: "jdoe"}
	assert.Equal(t, "jdoe", u.DisplayName(), "falls back to the username")
}
