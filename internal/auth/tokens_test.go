package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-key", time.Hour)

	t.Run("user principal survives the round trip", func(t *testing.T) {
		account := models.UserAccount{ID: domain.UserID(1700000000000), Name: "Tan", Email: "tan@x.com"}
		token, err := issuer.Issue(UserPrincipal{Account: account})
		require.NoError(t, err)

		p, err := issuer.ValidateToken(token)
		require.NoError(t, err)
		up, ok := p.(UserPrincipal)
		require.True(t, ok)
		assert.Equal(t, account.ID, up.Account.ID)
		assert.Equal(t, "Tan", up.Account.Name)
		assert.Equal(t, "tan@x.com", up.Account.Email)
	})

	t.Run("staff principal survives the round trip", func(t *testing.T) {
		token, err := issuer.Issue(StaffPrincipal{Username: "staff"})
		require.NoError(t, err)

		p, err := issuer.ValidateToken(token)
		require.NoError(t, err)
		assert.True(t, IsStaff(p))
	})

	t.Run("anonymous principals get no token", func(t *testing.T) {
		_, err := issuer.Issue(Anonymous{})
		require.Error(t, err)
	})
}

func TestTokenRejection(t *testing.T) {
	issuer := NewTokenIssuer("test-key", time.Hour)

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := issuer.ValidateToken("not.a.token")
		require.Error(t, err)
	})

	t.Run("a token signed with another key is rejected", func(t *testing.T) {
		other := NewTokenIssuer("other-key", time.Hour)
		token, err := other.Issue(StaffPrincipal{Username: "staff"})
		require.NoError(t, err)

		_, err = issuer.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("an expired token is rejected", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		expired := NewTokenIssuerAt("test-key", time.Hour, func() time.Time { return past })
		token, err := expired.Issue(StaffPrincipal{Username: "staff"})
		require.NoError(t, err)

		_, err = issuer.ValidateToken(token)
		require.Error(t, err)
	})
}
