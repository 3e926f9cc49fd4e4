package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"section-notify-server/internal/push/domain"
)

// Publisher is the best-effort notifier port called by record-creation code
// paths. At-most-once contract: one attempt per event, every failure is
// swallowed, the triggering insert must never fail because of it. If
// stronger delivery guarantees are ever needed, a durable outbox between
// record creation and the dispatcher is the upgrade path.
type Publisher interface {
	Publish(ctx context.Context, event domain.DomainEvent)
}

// dispatchPublisher resolves the audience, builds a human-readable
// notification and posts it to the dispatch endpoint with the service key.
type dispatchPublisher struct {
	resolver    *AudienceResolver
	dir         OrgDirectory
	client      *http.Client
	dispatchURL string
	serviceKey  string
}

// NewPublisher creates a new dispatchPublisher
func NewPublisher(resolver *AudienceResolver, dir OrgDirectory, dispatchURL, serviceKey string, timeout time.Duration) Publisher {
	return &dispatchPublisher{
		resolver:    resolver,
		dir:         dir,
		client:      &http.Client{Timeout: timeout},
		dispatchURL: dispatchURL,
		serviceKey:  serviceKey,
	}
}

func (p *dispatchPublisher) Publish(ctx context.Context, event domain.DomainEvent) {
	userIDs, err := p.resolver.Resolve(ctx, event)
	if err != nil {
		log.Printf("[Publisher] Failed to resolve audience for %s %s: %v", event.Category, event.EntityID, err)
		return
	}
	if len(userIDs) == 0 {
		log.Printf("[Publisher] No recipients for %s %s, skipping", event.Category, event.EntityID)
		return
	}

	req := &DispatchRequest{
		UserIDs:      userIDs,
		Notification: p.buildNotification(ctx, event),
		Data: map[string]string{
			"category":  string(event.Category),
			"relatedId": event.EntityID,
			"url":       p.clickTarget(event),
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		log.Printf("[Publisher] Failed to marshal dispatch request: %v", err)
		return
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.dispatchURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("[Publisher] Failed to build dispatch request: %v", err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.serviceKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		log.Printf("[Publisher] Dispatch call failed (notification dropped): %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[Publisher] Dispatch returned status %d: %s", resp.StatusCode, string(detail))
		return
	}
	log.Printf("[Publisher] Dispatched %s %s to %d recipients", event.Category, event.EntityID, len(userIDs))
}

// buildNotification composes the display payload. Name lookups are
// best-effort: a missing creator or scope name degrades the wording, never
// the delivery.
func (p *dispatchPublisher) buildNotification(ctx context.Context, event domain.DomainEvent) domain.Notification {
	creator, err := p.dir.UserName(ctx, event.CreatorID)
	if err != nil || creator == "" {
		creator = "Someone"
	}

	var scope string
	switch {
	case event.SectionID != "":
		scope, err = p.dir.SectionName(ctx, event.SectionID)
	case event.DepartmentID != "":
		scope, err = p.dir.DepartmentName(ctx, event.DepartmentID)
	}
	if err != nil {
		scope = ""
	}

	var title string
	switch event.Category {
	case domain.CategoryAnnouncement:
		title = "New announcement"
	default:
		title = "New task"
	}
	if scope != "" {
		title = fmt.Sprintf("%s in %s", title, scope)
	}

	body := fmt.Sprintf("%s created %q", creator, event.EntityTitle)
	if event.DueDate != nil {
		body = fmt.Sprintf("%s, due %s", body, event.DueDate.Format("Jan 2"))
	}

	return domain.Notification{
		Title: title,
		Body:  body,
		Tag:   string(event.Category) + "-" + event.EntityID,
	}
}

func (p *dispatchPublisher) clickTarget(event domain.DomainEvent) string {
	if event.Category == domain.CategoryAnnouncement {
		return "/announcements/" + event.EntityID
	}
	return "/tasks/" + event.EntityID
}
