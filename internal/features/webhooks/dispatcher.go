package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	cache_utils "chorey/internal/util/cache"

	"github.com/google/uuid"
)

const (
	deliveryQueueKey = "chorey:webhooks:queue"

	dispatchWorkersCount = 4
	dequeueTimeout       = 2 * time.Second
	deliveryTimeout      = 10 * time.Second
)

// Dispatcher delivers webhook events asynchronously. Enqueue resolves the
// subscribed endpoints, signs each payload and pushes deliveries to a shared
// Valkey queue; a worker pool drains the queue and performs the HTTP calls.
// The queue is shared across instances, so StartWorkers should run on one
// instance only.
type Dispatcher struct {
	webhookRepository *WebhookRepository
	queueService      *cache_utils.ValkeyQueueService
	httpClient        *http.Client
	logger            *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatcher(
	webhookRepository *WebhookRepository,
	queueService *cache_utils.ValkeyQueueService,
	logger *slog.Logger,
) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		webhookRepository: webhookRepository,
		queueService:      queueService,
		httpClient:        &http.Client{Timeout: deliveryTimeout},
		logger:            logger,
		ctx:               ctx,
		cancel:            cancel,
	}
}

// Enqueue signs and queues one delivery per active webhook subscribed to the
// event. Failures are logged; the event source is never blocked or failed by
// delivery problems.
func (d *Dispatcher) Enqueue(organizationID uuid.UUID, event string, payload any) {
	webhooks, err := d.webhookRepository.GetActiveWebhooksByOrganization(organizationID)
	if err != nil {
		d.logger.Error("failed to load webhooks for event",
			slog.String("organizationId", organizationID.String()),
			slog.String("event", event),
			slog.String("error", err.Error()))
		return
	}

	if len(webhooks) == 0 {
		return
	}

	body, err := json.Marshal(eventEnvelope{
		Event:          event,
		OrganizationID: organizationID,
		OccurredAt:     time.Now().UTC(),
		Data:           payload,
	})
	if err != nil {
		d.logger.Error("failed to marshal webhook payload",
			slog.String("event", event),
			slog.String("error", err.Error()))
		return
	}

	items := make([][]byte, 0, len(webhooks))
	for _, webhook := range webhooks {
		if !webhook.SubscribesTo(event) {
			continue
		}

		item, err := json.Marshal(delivery{
			WebhookID: webhook.ID,
			URL:       webhook.URL,
			Secret:    webhook.Secret,
			Event:     event,
			Body:      body,
			QueuedAt:  time.Now().UTC(),
		})
		if err != nil {
			continue
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		return
	}

	if err := d.queueService.EnqueueBatch(deliveryQueueKey, items); err != nil {
		d.logger.Error("failed to enqueue webhook deliveries",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// QueueDepth reports how many deliveries are waiting for a worker.
func (d *Dispatcher) QueueDepth() (int64, error) {
	return d.queueService.QueueLength(deliveryQueueKey)
}

func (d *Dispatcher) StartWorkers() {
	for i := 0; i < dispatchWorkersCount; i++ {
		d.wg.Add(1)
		go d.runWorker()
	}

	d.logger.Info("webhook dispatch workers started",
		slog.Int("workers", dispatchWorkersCount))
}

func (d *Dispatcher) StopWorkers() {
	d.cancel()
	d.wg.Wait()
}

func (d *Dispatcher) runWorker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		default:
		}

		item, err := d.queueService.DequeueBlocking(deliveryQueueKey, dequeueTimeout)
		if err != nil {
			d.logger.Error("failed to dequeue webhook delivery",
				slog.String("error", err.Error()))
			time.Sleep(time.Second)
			continue
		}

		if item == nil {
			continue
		}

		var queued delivery
		if err := json.Unmarshal(item, &queued); err != nil {
			d.logger.Error("failed to decode queued webhook delivery",
				slog.String("error", err.Error()))
			continue
		}

		d.deliver(&queued)
	}
}

func (d *Dispatcher) deliver(queued *delivery) {
	ctx, cancel := context.WithTimeout(d.ctx, deliveryTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, queued.URL, bytes.NewReader(queued.Body))
	if err != nil {
		d.logger.Error("failed to build webhook request",
			slog.String("webhookId", queued.WebhookID.String()),
			slog.String("error", err.Error()))
		return
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(SignatureHeader, Sign(queued.Secret, queued.Body))

	response, err := d.httpClient.Do(request)
	if err != nil {
		d.logger.Error("webhook delivery failed",
			slog.String("webhookId", queued.WebhookID.String()),
			slog.String("event", queued.Event),
			slog.String("error", err.Error()))
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		d.logger.Warn("webhook receiver returned non-success status",
			slog.String("webhookId", queued.WebhookID.String()),
			slog.String("event", queued.Event),
			slog.Int("status", response.StatusCode))
	}
}
