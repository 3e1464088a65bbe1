package queue

import (
	"sort"
	"strconv"
	"sync"

	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/sqs"
)

// QueueHealthGateway aggregates the health of the registered SQS workers.
type QueueHealthGateway struct {
	workers map[string]*sqs.Worker
	mutex   sync.RWMutex
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway() *QueueHealthGateway {
	return &QueueHealthGateway{workers: make(map[string]*sqs.Worker)}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker *sqs.Worker) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

// Health is UNKNOWN with no workers and DOWN when any worker stopped polling.
func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if len(gateway.workers) == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"workers_total": "0"},
		}
	}

	names := make([]string, 0, len(gateway.workers))
	for name := range gateway.workers {
		names = append(names, name)
	}
	sort.Strings(names)

	status := model.StatusUp
	details := map[string]string{"workers_total": strconv.Itoa(len(names))}
	for _, name := range names {
		workerHealth := gateway.workers[name].HealthCheck()
		if workerHealth.Status != sqs.StatusUp {
			status = model.StatusDown
		}
		details[name+"_status"] = string(workerHealth.Status)
		for key, value := range workerHealth.Details {
			details[name+"_"+key] = value
		}
	}

	return model.ComponentHealthStatus{Status: status, Details: details}
}
