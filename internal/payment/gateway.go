package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/service"
)

// SandboxGateway is an in-process stand-in for the hosted payment provider.
// Sessions settle immediately, which is enough for local development and for
// exercising the checkout flow end to end.
type SandboxGateway struct {
	successURL string

	mu       sync.Mutex
	sessions map[string]service.CheckoutOrder
}

func NewSandboxGateway(successURL string) *SandboxGateway {
	return &SandboxGateway{
		successURL: successURL,
		sessions:   map[string]service.CheckoutOrder{},
	}
}

func (g *SandboxGateway) CreateSession(_ context.Context, order service.CheckoutOrder) (service.GatewaySession, error) {
	id := "cs_" + uuid.NewString()

	g.mu.Lock()
	g.sessions[id] = order
	g.mu.Unlock()

	return service.GatewaySession{ID: id, URL: g.successURL + "?session_id=" + id}, nil
}

func (g *SandboxGateway) Session(_ context.Context, sessionID string) (service.CheckoutOrder, bool, error) {
	g.mu.Lock()
	order, ok := g.sessions[sessionID]
	g.mu.Unlock()

	if !ok {
		return service.CheckoutOrder{}, false, model.ErrOrderNotFound
	}
	return order, true, nil
}
