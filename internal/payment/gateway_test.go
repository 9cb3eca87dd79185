package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/service"
)

func TestSandboxGateway(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gateway := NewSandboxGateway("http://localhost:5173/checkout/success")

	t.Run("sessions settle immediately", func(t *testing.T) {
		created, err := gateway.CreateSession(ctx, service.CheckoutOrder{UserID: "user-1", Total: 99.5})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(created.ID, "cs_"))
		assert.Contains(t, created.URL, "session_id="+created.ID)

		order, paid, err := gateway.Session(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, paid)
		assert.Equal(t, "user-1", order.UserID)
		assert.Equal(t, 99.5, order.Total)
	})

	t.Run("unknown sessions are not found", func(t *testing.T) {
		_, _, err := gateway.Session(ctx, "cs_unknown")
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}
