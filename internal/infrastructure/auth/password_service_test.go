package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", hash)

	assert.True(t, svc.Verify(hash, "pw123456"))
	assert.False(t, svc.Verify(hash, "wrongpw"))
}

func TestPasswordService_EmptyHashNeverMatches(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)
	assert.False(t, svc.Verify("", ""))
	assert.False(t, svc.Verify("", "anything"))
}

func TestPasswordService_CostFallback(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "below minimum", cost: 1, want: bcrypt.DefaultCost},
		{name: "above maximum", cost: 99, want: bcrypt.DefaultCost},
		{name: "in range", cost: bcrypt.MinCost, want: bcrypt.MinCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPasswordService(tt.cost).(*PasswordServiceImpl)
			assert.Equal(t, tt.want, svc.cost)
		})
	}
}
