package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"carelink/metrics"
	"carelink/models"
	"carelink/services/store"
)

var (
	ErrUnknownPlan          = errors.New("unknown plan")
	ErrBillingNotConfigured = errors.New("billing is not configured")
	ErrInvalidWebhook       = errors.New("invalid webhook payload")
)

// Plan is something a provider can pay for.
type Plan string

const (
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
	// PlanLead is a one-off purchase that does not change the tier.
	PlanLead Plan = "lead"
)

// Tier returns the subscription tier a plan grants.
func (p Plan) Tier() (models.Tier, bool) {
	switch p {
	case PlanPro:
		return models.TierPro, true
	case PlanPremium:
		return models.TierPremium, true
	}
	return "", false
}

// Config holds the Stripe settings. An empty Key disables checkout and an
// empty WebhookSecret disables webhook handling.
type Config struct {
	Key           string
	WebhookSecret string
	ProPrice      string
	PremiumPrice  string
	LeadPrice     string
	SuccessURL    string
	CancelURL     string
}

// Checkout is a hosted checkout page the provider is redirected to.
type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Completion is a paid checkout reported by the webhook.
type Completion struct {
	SessionID  string `json:"sessionId"`
	ProviderID string `json:"providerId"`
	Plan       Plan   `json:"plan"`
}

// TierUpgrader applies a tier change to the directory.
type TierUpgrader interface {
	UpgradeTier(ctx context.Context, providerID string, tier models.Tier) (store.State, error)
}

// Fulfiller acts on a completed checkout, either inline or through a queue.
type Fulfiller interface {
	Fulfil(ctx context.Context, c Completion) error
}

// Apply records c against the directory. Lead purchases change nothing.
func Apply(ctx context.Context, up TierUpgrader, c Completion) error {
	tier, ok := c.Plan.Tier()
	if !ok {
		return nil
	}
	_, err := up.UpgradeTier(ctx, c.ProviderID, tier)
	return err
}

// Inline fulfils completions synchronously.
type Inline struct {
	Upgrader TierUpgrader
}

func (i Inline) Fulfil(ctx context.Context, c Completion) error {
	return Apply(ctx, i.Upgrader, c)
}

// Service creates checkout sessions and verifies webhooks.
type Service struct {
	cfg        Config
	logger     *zap.Logger
	metrics    *metrics.Metrics
	newSession func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewService returns a billing service. The Stripe API key itself is read
// from stripe.Key.
func NewService(cfg Config, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: logger, metrics: m, newSession: session.New}
}

func (s *Service) price(plan Plan) (string, stripe.CheckoutSessionMode, error) {
	var price string
	mode := stripe.CheckoutSessionModeSubscription
	switch plan {
	case PlanPro:
		price = s.cfg.ProPrice
	case PlanPremium:
		price = s.cfg.PremiumPrice
	case PlanLead:
		price, mode = s.cfg.LeadPrice, stripe.CheckoutSessionModePayment
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	if price == "" {
		return "", "", fmt.Errorf("%w: no price for %s", ErrBillingNotConfigured, plan)
	}
	return price, mode, nil
}

// StartCheckout creates a hosted checkout session for providerID.
func (s *Service) StartCheckout(ctx context.Context, providerID string, plan Plan) (Checkout, error) {
	if s.cfg.Key == "" {
		return Checkout{}, ErrBillingNotConfigured
	}
	price, mode, err := s.price(plan)
	if err != nil {
		return Checkout{}, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(price), Quantity: stripe.Int64(1)},
		},
		ClientReferenceID: stripe.String(providerID),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		Metadata: map[string]string{
			"provider_id": providerID,
			"plan":        string(plan),
		},
	}
	params.Context = ctx

	cs, err := s.newSession(params)
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.String("providerId", providerID), zap.String("plan", string(plan)), zap.Error(err))
		return Checkout{}, fmt.Errorf("failed to create checkout session: %w", err)
	}
	s.metrics.IncrementCheckout(string(plan))
	s.logger.Info("Checkout session created",
		zap.String("providerId", providerID), zap.String("plan", string(plan)), zap.String("session", cs.ID))
	return Checkout{ID: cs.ID, URL: cs.URL}, nil
}

// ParseWebhook verifies a Stripe webhook and extracts a completed checkout.
// Events other than checkout.session.completed return nil.
func (s *Service) ParseWebhook(payload []byte, signature string) (*Completion, error) {
	if s.cfg.WebhookSecret == "" {
		return nil, ErrBillingNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		s.logger.Debug("Ignoring webhook event", zap.String("type", string(event.Type)))
		return nil, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	providerID := cs.ClientReferenceID
	if providerID == "" {
		providerID = cs.Metadata["provider_id"]
	}
	plan := Plan(cs.Metadata["plan"])
	if providerID == "" || plan == "" {
		return nil, fmt.Errorf("%w: checkout %s has no provider or plan", ErrInvalidWebhook, cs.ID)
	}
	return &Completion{SessionID: cs.ID, ProviderID: providerID, Plan: plan}, nil
}
