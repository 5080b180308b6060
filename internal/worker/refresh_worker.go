package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"sentinel-ds/internal/model"
	"sentinel-ds/internal/platform/rabbitmq"
)

// RefreshHandler runs one refresh job to completion.
type RefreshHandler interface {
	HandleRefresh(ctx context.Context, job model.RefreshJob) error
}

// RefreshWorker consumes refresh jobs one at a time.
type RefreshWorker struct {
	conn      *amqp.Connection
	handler   RefreshHandler
	queueName string
	log       logrus.FieldLogger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRefreshWorker(conn *amqp.Connection, handler RefreshHandler, queueName string, log logrus.FieldLogger) *RefreshWorker {
	return &RefreshWorker{
		conn:      conn,
		handler:   handler,
		queueName: queueName,
		log:       log.WithField("component", "refresh_worker"),
	}
}

func (w *RefreshWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	// one unacknowledged job at a time keeps batch runs from overlapping
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.process(workerCtx, d.Body); err != nil {
					w.log.WithError(err).Error("refresh job failed")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *RefreshWorker) process(ctx context.Context, body []byte) error {
	var job model.RefreshJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode refresh job failed: %w", err)
	}

	log := w.log.WithField("job_id", job.JobID)
	log.WithField("names", job.Names).Info("refresh job received")
	if err := w.handler.HandleRefresh(ctx, job); err != nil {
		return fmt.Errorf("handle refresh job %s failed: %w", job.JobID, err)
	}
	log.Info("refresh job done")
	return nil
}

func (w *RefreshWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
