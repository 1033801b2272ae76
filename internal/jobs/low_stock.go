package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
	"github.com/Ananth-NQI/tokopesan-backend/internal/services"
	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

// LowStockJob periodically reports products of the local inventory whose
// stock fell to the threshold
type LowStockJob struct {
	store     storage.Store
	sender    services.MessageSender // nil logs the alert only
	adminTo   string
	threshold int
	interval  time.Duration

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	reported map[string]int // last stock alerted per product
}

// NewLowStockJob creates a new low stock job
func NewLowStockJob(store storage.Store, sender services.MessageSender, adminTo string, threshold int, interval time.Duration) *LowStockJob {
	return &LowStockJob{
		store:     store,
		sender:    sender,
		adminTo:   adminTo,
		threshold: threshold,
		interval:  interval,
		reported:  make(map[string]int),
	}
}

// Start runs the check every interval until Stop is called
func (j *LowStockJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		log.Println("Low stock job already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.done = make(chan struct{})
	log.Printf("⏰ Low stock job started (threshold %d, every %v)", j.threshold, j.interval)

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := j.Check(); err != nil {
					log.Printf("❌ Low stock check failed: %v", err)
				}
			}
		}
	}()
}

// Stop halts the job and waits for a running check to finish
func (j *LowStockJob) Stop() {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.cancel = nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}
	log.Println("⏹️  Stopping low stock job...")
	cancel()
	<-done
}

// Check scans the inventory once and alerts about products that newly
// reached the threshold or dropped further since the last alert
func (j *LowStockJob) Check() ([]*models.Product, error) {
	products, err := j.store.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	j.mu.Lock()
	var low []*models.Product
	for _, p := range products {
		if p.Stock > j.threshold {
			delete(j.reported, p.Name)
			continue
		}
		if last, ok := j.reported[p.Name]; ok && last <= p.Stock {
			continue
		}
		j.reported[p.Name] = p.Stock
		low = append(low, p)
	}
	j.mu.Unlock()

	if len(low) == 0 {
		return nil, nil
	}

	alert := lowStockMessage(low)
	log.Printf("⚠️  %s", strings.ReplaceAll(alert, "\n", " | "))
	if j.sender != nil && j.adminTo != "" {
		if err := j.sender.SendWhatsAppMessage(j.adminTo, alert); err != nil {
			return low, fmt.Errorf("send low stock alert: %w", err)
		}
	}
	return low, nil
}

func lowStockMessage(products []*models.Product) string {
	var b strings.Builder
	b.WriteString("⚠️ Stok menipis:\n")
	for _, p := range products {
		if p.Stock == 0 {
			fmt.Fprintf(&b, "• %s: HABIS\n", p.Name)
			continue
		}
		fmt.Fprintf(&b, "• %s: %d unit\n", p.Name, p.Stock)
	}
	return strings.TrimRight(b.String(), "\n")
}
