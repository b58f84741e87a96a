package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики займов
	ApplicationsSubmitted int64
	LoansApproved         int64
	LoansDenied           int64

	// Метрики платежей
	ReceiptsSubmitted int64
	ReceiptsApproved  int64
	ReceiptsRejected  int64

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordApplication записывает метрику поданной заявки
func (m *Metrics) RecordApplication() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplicationsSubmitted++
}

// RecordLoanDecision записывает метрику решения по займу
func (m *Metrics) RecordLoanDecision(approved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if approved {
		m.LoansApproved++
	} else {
		m.LoansDenied++
	}
}

// RecordReceiptSubmitted записывает метрику зарегистрированного платежа
func (m *Metrics) RecordReceiptSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReceiptsSubmitted++
}

// RecordReceiptReviewed записывает метрику проверенного платежа
func (m *Metrics) RecordReceiptReviewed(approved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if approved {
		m.ReceiptsApproved++
	} else {
		m.ReceiptsRejected++
	}
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}

	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_requests":         m.TotalRequests,
		"failed_requests":        m.FailedRequests,
		"average_latency":        m.AverageLatency.String(),
		"applications_submitted": m.ApplicationsSubmitted,
		"loans_approved":         m.LoansApproved,
		"loans_denied":           m.LoansDenied,
		"receipts_submitted":     m.ReceiptsSubmitted,
		"receipts_approved":      m.ReceiptsApproved,
		"receipts_rejected":      m.ReceiptsRejected,
		"error_count":            m.ErrorCount,
		"last_error_time":        m.LastErrorTime,
		"error_types":            m.ErrorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.ApplicationsSubmitted = 0
	m.LoansApproved = 0
	m.LoansDenied = 0
	m.ReceiptsSubmitted = 0
	m.ReceiptsApproved = 0
	m.ReceiptsRejected = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
