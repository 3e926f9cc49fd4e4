package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"section-notify-server/internal/push/domain"
	"section-notify-server/internal/push/repository"
	"section-notify-server/pkg/fcm"
)

const (
	defaultIcon  = "/icons/icon-192.png"
	defaultBadge = "/icons/badge-72.png"
)

var (
	// ErrMissingNotification is returned when title or body is absent
	ErrMissingNotification = errors.New("notification title and body are required")
	// ErrNoTarget is returned when neither userIds nor tokens is provided
	ErrNoTarget = errors.New("either userIds or tokens must be provided")
	// ErrGatewayUnavailable is returned when no push gateway is configured
	ErrGatewayUnavailable = errors.New("push gateway is not configured")
)

// Gateway is the outbound push port. pkg/fcm implements it for Firebase;
// permanent failures come back as *fcm.SendError with Permanent set.
type Gateway interface {
	Send(ctx context.Context, token string, notification fcm.NotificationData, data map[string]string) error
}

// DispatchRequest is the dispatch endpoint's wire format. Either UserIDs or
// Tokens must be present; passing tokens directly bypasses preference
// filtering on purpose (manual/administrative sends).
type DispatchRequest struct {
	UserIDs      []string            `json:"userIds"`
	Tokens       []string            `json:"tokens"`
	Notification domain.Notification `json:"notification"`
	Data         map[string]string   `json:"data"`
}

// TokenResult is the per-token outcome detail
type TokenResult struct {
	Token  string                `json:"token"`
	UserID string                `json:"userId,omitempty"`
	Status domain.DeliveryStatus `json:"status"`
	Error  string                `json:"error,omitempty"`
}

// DispatchSummary aggregates the fan-out outcome
type DispatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// DispatchResult is the dispatch endpoint's response body
type DispatchResult struct {
	Success bool            `json:"success"`
	Summary DispatchSummary `json:"summary"`
	Results []TokenResult   `json:"results"`
}

// Dispatcher fans one notification out to every target token concurrently,
// classifies per-token outcomes, deactivates dead tokens and appends the
// audit history. Stateless; one instance serves all requests.
type Dispatcher struct {
	gateway Gateway
	tokens  repository.TokenRepository
	prefs   repository.PreferenceRepository
	history repository.HistoryRepository

	now func() time.Time
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(gateway Gateway, tokens repository.TokenRepository, prefs repository.PreferenceRepository, history repository.HistoryRepository) *Dispatcher {
	return &Dispatcher{
		gateway: gateway,
		tokens:  tokens,
		prefs:   prefs,
		history: history,
		now:     time.Now,
	}
}

type target struct {
	token  string
	userID string
}

// Dispatch validates the request, resolves the target token set and runs the
// fan-out. Storage failures during resolution abort the call; failures while
// recording individual outcomes are best-effort and only logged. An empty
// resolved set is a success with zero sends.
func (d *Dispatcher) Dispatch(ctx context.Context, req *DispatchRequest) (*DispatchResult, error) {
	if req.Notification.Title == "" || req.Notification.Body == "" {
		return nil, ErrMissingNotification
	}
	if req.UserIDs == nil && req.Tokens == nil {
		return nil, ErrNoTarget
	}
	if d.gateway == nil {
		return nil, ErrGatewayUnavailable
	}

	category := domain.Category(req.Data["category"])
	if category == "" {
		category = domain.CategoryTask
	}

	targets, err := d.resolveTargets(ctx, req, category)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return &DispatchResult{Success: true, Results: []TokenResult{}}, nil
	}

	notification := d.applyDefaults(req.Notification, category, req.Data["relatedId"])

	results := make([]TokenResult, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()
			results[i] = d.sendOne(ctx, t, notification, category, req.Data)
		}(i, t)
	}
	wg.Wait()

	summary := DispatchSummary{Total: len(results)}
	for _, res := range results {
		if res.Status == domain.DeliverySent {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	log.Printf("[Dispatch] Sent %d/%d notifications (%d failed)", summary.Successful, summary.Total, summary.Failed)

	return &DispatchResult{Success: true, Summary: summary, Results: results}, nil
}

// resolveTargets turns the request into concrete tokens. The userIds path
// is filtered by preference flags and quiet hours; the tokens path is used
// verbatim.
func (d *Dispatcher) resolveTargets(ctx context.Context, req *DispatchRequest, category domain.Category) ([]target, error) {
	if len(req.Tokens) > 0 {
		targets := make([]target, len(req.Tokens))
		for i, token := range req.Tokens {
			targets[i] = target{token: token}
		}
		return targets, nil
	}

	now := d.now()
	allowed := make([]string, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		pref, err := d.prefs.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if pref != nil {
			if !pref.Allows(category) {
				continue
			}
			if pref.InQuietHours(now) {
				continue
			}
		}
		allowed = append(allowed, userID)
	}

	tokens, err := d.tokens.ListActiveForUsers(ctx, allowed)
	if err != nil {
		return nil, err
	}
	targets := make([]target, len(tokens))
	for i, token := range tokens {
		targets[i] = target{token: token.Token, userID: token.UserID}
	}
	return targets, nil
}

func (d *Dispatcher) applyDefaults(n domain.Notification, category domain.Category, relatedID string) fcm.NotificationData {
	out := fcm.NotificationData{
		Title:              n.Title,
		Body:               n.Body,
		Icon:               n.Icon,
		Badge:              n.Badge,
		Tag:                n.Tag,
		RequireInteraction: n.RequireInteraction,
	}
	if out.Icon == "" {
		out.Icon = defaultIcon
	}
	if out.Badge == "" {
		out.Badge = defaultBadge
	}
	if out.Tag == "" && relatedID != "" {
		out.Tag = string(category) + "-" + relatedID
	}
	return out
}

// sendOne delivers to a single token and records its outcome. Independent of
// every other token: its failure never blocks or fails another send.
func (d *Dispatcher) sendOne(ctx context.Context, t target, notification fcm.NotificationData, category domain.Category, data map[string]string) TokenResult {
	result := TokenResult{Token: t.token, UserID: t.userID, Status: domain.DeliverySent}

	err := d.gateway.Send(ctx, t.token, notification, data)
	if err != nil {
		result.Status = domain.DeliveryFailed
		result.Error = err.Error()

		var sendErr *fcm.SendError
		if errors.As(err, &sendErr) && sendErr.Permanent {
			if derr := d.tokens.Deactivate(ctx, t.token); derr != nil {
				log.Printf("[Dispatch] Failed to deactivate invalid token: %v", derr)
			} else {
				log.Printf("[Dispatch] Token reported unregistered, deactivated")
			}
		} else {
			log.Printf("[Dispatch] Transient delivery failure: %v", err)
		}
	} else {
		if merr := d.tokens.MarkUsed(ctx, t.token); merr != nil {
			log.Printf("[Dispatch] Failed to refresh token usage: %v", merr)
		}
	}

	if herr := d.history.Append(ctx, &domain.NotificationHistory{
		UserID:    t.userID,
		Title:     notification.Title,
		Body:      notification.Body,
		Category:  category,
		RelatedID: data["relatedId"],
		Token:     t.token,
		Status:    result.Status,
		Error:     result.Error,
	}); herr != nil {
		log.Printf("[Dispatch] Failed to append history: %v", herr)
	}

	return result
}
