package handler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/syncing"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/apiErrors"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/log"
)

// mailbox é a fila FIFO de um único cliente do stream.
// push nunca bloqueia, pois é chamado com o rastreador de progresso travado.
type mailbox struct {
	mu      sync.Mutex
	pending []domain.SyncProgress
	signal  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

func (m *mailbox) push(progress domain.SyncProgress) {
	m.mu.Lock()
	m.pending = append(m.pending, progress)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *mailbox) drain() []domain.SyncProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	batch := m.pending
	m.pending = nil
	return batch
}

// StreamSyncProgress envia um evento SSE por snapshot, começando pelo estado atual.
// Falha de escrita encerra apenas este cliente.
func StreamSyncProgress(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrStreamUnsupported, "Streaming não suportado", nil)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		box := newMailbox()
		unsubscribe := service.Subscribe(box.push)
		defer unsubscribe()

		logger.Debug("sync: progress stream opened")

		for {
			select {
			case <-r.Context().Done():
				logger.Debug("sync: progress stream closed by client")
				return
			case <-box.signal:
				for _, progress := range box.drain() {
					if err := writeEvent(w, progress); err != nil {
						logger.WithError(err).Warn("sync: progress stream write failed, unsubscribing")
						return
					}
				}
				flusher.Flush()
			}
		}
	})
}

func writeEvent(w http.ResponseWriter, progress domain.SyncProgress) error {
	payload, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
