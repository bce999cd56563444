package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	PasswordCost = bcrypt.MinCost
	m.Run()
}

func TestPasswordVerification(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("Aa1!aaaa"))

	assert.NotEqual(t, "Aa1!aaaa", u.PasswordHash)
	assert.True(t, u.CheckPassword("Aa1!aaaa"))
	assert.False(t, u.CheckPassword("Aa1!aaab"))
	assert.False(t, u.CheckPassword(""))

	require.NoError(t, u.SetPassword("Bb2@bbbb"))
	assert.False(t, u.CheckPassword("Aa1!aaaa"), "old password must stop working")
	assert.True(t, u.CheckPassword("Bb2@bbbb"))
}

func TestLongPasswordsAreNotTruncated(t *testing.T) {
	var u User
	long := "Aa1!" + strings.Repeat("é", 60)
	require.NoError(t, u.SetPassword(long))
	assert.True(t, u.CheckPassword(long))
	assert.False(t, u.CheckPassword(long[:len(long)-2]+"e"))
	assert.False(t, u.CheckPassword(long[:72]))
}

func TestCheckPasswordWithoutHash(t *testing.T) {
	var u User
	assert.False(t, u.CheckPassword("anything"))
}

func TestSaltedHashesDiffer(t *testing.T) {
	var a, b User
	require.NoError(t, a.SetPassword("Aa1!aaaa"))
	require.NoError(t, b.SetPassword("Aa1!aaaa"))
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestEnumScanRejectsUnknownLabels(t *testing.T) {
	var g Gender
	require.NoError(t, g.Scan([]byte("PREFER_NOT_TO_SAY")))
	assert.Equal(t, GenderPreferNotToSay, g)
	assert.Error(t, g.Scan("male"))
	assert.Error(t, g.Scan(42))

	var b BloodGroup
	require.NoError(t, b.Scan("AB-"))
	assert.Equal(t, BloodGroupABNegative, b)
	assert.Error(t, b.Scan("C+"))

	_, err := BloodGroup("").Value()
	assert.Error(t, err)

	var s ApplicationStatus
	require.NoError(t, s.Scan("APPROVED"))
	assert.Equal(t, ApplicationStatusApproved, s)
}

func TestEveryListedEnumParses(t *testing.T) {
	for _, g := range Genders {
		parsed, err := ParseGender(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	for _, b := range BloodGroups {
		parsed, err := ParseBloodGroup(string(b))
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
	assert.Len(t, BloodGroups, 8)
}

func TestActor(t *testing.T) {
	assert.False(t, Anonymous.IsAuthenticated())

	u := User{ID: "u-1", Username: "alice", IsAdmin: true}
	actor := u.Actor()
	assert.True(t, actor.IsAuthenticated())
	assert.True(t, actor.IsAdmin)
	assert.Equal(t, "alice", actor.Username)
}
