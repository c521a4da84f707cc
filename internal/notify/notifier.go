// Package notify delivers product.soldout events to registered webhooks
// and the live websocket feed. Delivery is a best-effort side effect of
// the triggering mutation: failures are logged, never surfaced to the
// HTTP client that caused them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"froot-boot-api-server/internal/events"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/service"
	"froot-boot-api-server/internal/socket"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// Payload is the body POSTed to each subscribed webhook URL.
type Payload struct {
	Event string       `json:"event"`
	Data  []ProductRef `json:"data"`
}

// ProductRef identifies one sold-out product in the payload.
type ProductRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Notifier fans a soldout event out to all webhooks subscribed to
// product.soldout, one POST per hook.
type Notifier struct {
	products *service.Service[models.Product]
	webhooks *service.Service[models.WebHook]
	hub      *socket.Hub
	client   *http.Client
	log      *logrus.Entry
}

// New creates a Notifier with a bounded timeout on the outbound client.
func New(products *service.Service[models.Product], webhooks *service.Service[models.WebHook], hub *socket.Hub) *Notifier {
	return &Notifier{
		products: products,
		webhooks: webhooks,
		hub:      hub,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      logrus.WithField("component", "webhook-notifier"),
	}
}

// Subscribe attaches the notifier to the event bus. Handlers run on a
// background goroutine, decoupled from the triggering request.
func (n *Notifier) Subscribe(bus *events.Bus) error {
	return bus.SubscribeProductSoldout(n.NotifySoldout)
}

// NotifySoldout loads the currently sold-out products and every webhook
// subscribed to product.soldout, then POSTs the payload to each URL
// sequentially. A failing hook is logged and skipped.
func (n *Notifier) NotifySoldout() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	soldout, err := n.products.GetAllResourcesByFilter(ctx, bson.M{"soldout": true})
	if err != nil {
		n.log.WithError(err).Error("failed to load sold out products")
		return
	}

	hooks, err := n.webhooks.GetAllResourcesByFilter(ctx, bson.M{"event": events.TopicProductSoldout})
	if err != nil {
		n.log.WithError(err).Error("failed to load registered webhooks")
		return
	}

	payload := Payload{Event: events.TopicProductSoldout, Data: make([]ProductRef, 0, len(soldout))}
	for _, p := range soldout {
		payload.Data = append(payload.Data, ProductRef{Name: p.Name, ID: p.ID.Hex()})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.log.WithError(err).Error("failed to encode webhook payload")
		return
	}

	if n.hub != nil {
		n.hub.Broadcast(body)
	}

	for _, hook := range hooks {
		if err := n.post(ctx, hook.URL, body); err != nil {
			n.log.WithField("url", hook.URL).WithError(err).Error("error triggering webhook")
			continue
		}
		n.log.WithField("url", hook.URL).Debug("webhook notified")
	}
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}
