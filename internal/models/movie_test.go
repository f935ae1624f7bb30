package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	v, err := StringList{"Action", "Sci-Fi"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Action","Sci-Fi"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringList
		wantErr bool
	}{
		{name: "bytes", src: []byte(`["Drama"]`), want: StringList{"Drama"}},
		{name: "string", src: `["A","B"]`, want: StringList{"A", "B"}},
		{name: "nil", src: nil, want: StringList{}},
		{name: "json null", src: "null", want: StringList{}},
		{name: "bad json", src: "{", wantErr: true},
		{name: "bad type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := l.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestSubscriptionType_Valid(t *testing.T) {
	assert.True(t, SubscriptionFree.Valid())
	assert.True(t, SubscriptionPremium.Valid())
	assert.False(t, SubscriptionType("gold").Valid())
}

func TestUserDB_PublicHasNoCredentials(t *testing.T) {
	u := &UserDB{Username: "neo", Email: "neo@example.com", PasswordHash: "$2a$10$hash", IsActive: true}
	pub := u.Public()

	assert.Equal(t, "neo", pub.Username)
	assert.Equal(t, "neo@example.com", pub.Email)
	assert.True(t, pub.IsActive)
}
