package syncing

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

// Subscriber recebe o snapshot completo a cada mudança de progresso.
// É chamado de forma síncrona com o lock do tracker adquirido, então
// não pode chamar métodos do tracker nem bloquear.
type Subscriber func(domain.SyncProgress)

type subscription struct {
	id uint64
	fn Subscriber
}

// ProgressTracker é o estado observável da sincronização.
// Toda mutação e a entrega aos inscritos acontecem sob o mesmo lock,
// o que garante a mesma ordem de atualizações para todos.
type ProgressTracker struct {
	mu            sync.Mutex
	state         domain.SyncProgress
	subscriptions []subscription
	nextID        uint64
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{state: domain.NewSyncProgress()}
}

// Snapshot devolve uma cópia do estado atual
func (t *ProgressTracker) Snapshot() domain.SyncProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.Clone()
}

// Subscribe entrega o estado atual imediatamente e depois cada atualização.
// A função retornada cancela a inscrição e pode ser chamada mais de uma vez.
func (t *ProgressTracker) Subscribe(fn Subscriber) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.subscriptions = append(t.subscriptions, subscription{id: id, fn: fn})
	deliver(id, fn, t.state.Clone())

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			for i, s := range t.subscriptions {
				if s.id == id {
					t.subscriptions = append(t.subscriptions[:i:i], t.subscriptions[i+1:]...)
					break
				}
			}
		})
	}
}

func (t *ProgressTracker) SubscriberCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.subscriptions)
}

// Begin passa para syncing e zera os contadores, a menos que já haja uma execução
func (t *ProgressTracker) Begin(runID string, startedAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Status == domain.SyncStatusSyncing {
		return ErrSyncInProgress
	}

	t.state = domain.SyncProgress{
		Status:    domain.SyncStatusSyncing,
		RunID:     runID,
		StartedAt: &startedAt,
	}
	t.notify()
	return nil
}

// SetFetched atualiza os contadores de busca; fetched nunca diminui
func (t *ProgressTracker) SetFetched(entity domain.EntityType, fetched, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	counter := t.state.Entity(entity)
	if counter == nil {
		return
	}
	counter.Fetched = max(counter.Fetched, fetched)
	counter.Total = max(total, counter.Fetched)
	t.notify()
}

func (t *ProgressTracker) AddStored(entity domain.EntityType, stored int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	counter := t.state.Entity(entity)
	if counter == nil || stored <= 0 {
		return
	}
	counter.Stored += stored
	t.notify()
}

func (t *ProgressTracker) Complete(finishedAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Status = domain.SyncStatusCompleted
	t.state.Error = ""
	t.state.FinishedAt = &finishedAt
	t.notify()
}

func (t *ProgressTracker) Fail(message string, finishedAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Status = domain.SyncStatusError
	t.state.Error = message
	t.state.FinishedAt = &finishedAt
	t.notify()
}

// notify deve ser chamado com o lock adquirido
func (t *ProgressTracker) notify() {
	for _, s := range t.subscriptions {
		deliver(s.id, s.fn, t.state.Clone())
	}
}

// deliver isola panics de um inscrito para não afetar a sincronização nem os demais
func deliver(id uint64, fn Subscriber, snapshot domain.SyncProgress) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"subscriber_id": id,
				"panic":         r,
				"stack":         string(debug.Stack()),
			}).Error("sync: progress subscriber panicked")
		}
	}()

	fn(snapshot)
}
