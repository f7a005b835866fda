// Package notify delivers OTP codes to users asynchronously with bounded
// retries, decoupled from the request/response cycle.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
	"wordvault/internal/models"
)

// Sender performs one delivery attempt.
type Sender interface {
	SendOtpEmail(ctx context.Context, to, name, code string, purpose models.OtpPurpose, expiresIn time.Duration) error
}

const (
	maxAttempts    = 3
	attemptTimeout = 10 * time.Second
	retryDelay     = 2 * time.Second
	queueSize      = 64
)

type job struct {
	to        string
	name      string
	code      string
	purpose   models.OtpPurpose
	expiresIn time.Duration
}

// Dispatcher queues OTP deliveries and works through them on a background
// goroutine. Callers only learn whether a job was accepted; delivery
// failures are retried and, when exhausted, logged, never raised back.
type Dispatcher struct {
	sender     Sender
	jobs       chan job
	retryDelay time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher creates a dispatcher and starts its worker.
func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender:     sender,
		jobs:       make(chan job, queueSize),
		retryDelay: retryDelay,
		done:       make(chan struct{}),
	}
	go d.work()
	return d
}

// Dispatch enqueues a delivery. Returns false when the queue is full or the
// dispatcher is shut down; the caller treats that as "not delivered" without
// failing the surrounding operation.
func (d *Dispatcher) Dispatch(user *models.User, code string, purpose models.OtpPurpose, expiresIn time.Duration) (accepted bool) {
	defer func() {
		// Sending on a closed channel panics; a dispatch raced with Close.
		if recover() != nil {
			accepted = false
		}
	}()

	select {
	case d.jobs <- job{to: user.Email, name: user.Name, code: code, purpose: purpose, expiresIn: expiresIn}:
		return true
	default:
		log.Printf("notification queue full, dropping OTP delivery to %s", user.Email)
		return false
	}
}

// Close stops accepting jobs and waits for queued deliveries to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
		<-d.done
	})
}

func (d *Dispatcher) work() {
	defer close(d.done)

	for j := range d.jobs {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), attemptTimeout)
		lastErr = d.sender.SendOtpEmail(ctx, j.to, j.name, j.code, j.purpose, j.expiresIn)
		cancel()

		if lastErr == nil {
			log.Printf("OTP email sent to %s (purpose=%s)", j.to, j.purpose)
			return
		}
		if attempt < maxAttempts {
			time.Sleep(d.retryDelay)
		}
	}

	log.Printf("OTP email to %s failed after %d attempts: %v", j.to, maxAttempts, lastErr)
}
