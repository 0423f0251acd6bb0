package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	appointmentdomain "callsync-backend/internal/appointment/domain"
	appointmentrepo "callsync-backend/internal/appointment/repository"
	callsyncdomain "callsync-backend/internal/callsync/domain"
	"callsync-backend/internal/callsync/extract"
	"callsync-backend/pkg/lisa"
)

// CallFetcher lists a tenant's recent calls from the calling platform
type CallFetcher interface {
	ListCalls(ctx context.Context, tenantID string, limit int) ([]callsyncdomain.Call, error)
}

// TenantRegistry lists the tenant identifiers known to the system
type TenantRegistry interface {
	ListTenantIDs(ctx context.Context) ([]string, error)
}

// SyncOrchestrator drives one sync pass: per tenant, fetch new calls
// and run each through summarize -> classify -> extract -> upsert.
// Tenants run concurrently; calls within a tenant run sequentially in
// ascending start-time order so a caller's later slot never gets
// shadowed by out-of-order processing.
type SyncOrchestrator struct {
	tenants    TenantRegistry
	fetcher    CallFetcher
	summarizer *Summarizer
	classifier *Classifier
	chat       lisa.ChatClient
	store      appointmentrepo.AppointmentRepository
	cache      *DedupCache
	callLimit  int
}

// NewSyncOrchestrator creates a new SyncOrchestrator
func NewSyncOrchestrator(
	tenants TenantRegistry,
	fetcher CallFetcher,
	chat lisa.ChatClient,
	store appointmentrepo.AppointmentRepository,
	cache *DedupCache,
	callLimit int,
) *SyncOrchestrator {
	if callLimit <= 0 {
		callLimit = 25
	}
	return &SyncOrchestrator{
		tenants:    tenants,
		fetcher:    fetcher,
		summarizer: NewSummarizer(chat),
		classifier: NewClassifier(chat),
		chat:       chat,
		store:      store,
		cache:      cache,
		callLimit:  callLimit,
	}
}

// RunOnce executes one full pass over all tenants. Per-call and
// per-tenant failures are logged and skipped; only a tenant-registry
// failure aborts the pass (it will run again on the next tick).
// Overlapping passes are safe: the store's unique constraints
// serialize concurrent writers for the same identity key.
func (o *SyncOrchestrator) RunOnce(ctx context.Context) error {
	tenantIDs, err := o.tenants.ListTenantIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tenants: %w", err)
	}

	var wg sync.WaitGroup
	for _, tenantID := range tenantIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			o.syncTenant(ctx, id)
		}(tenantID)
	}
	wg.Wait()
	return nil
}

// syncTenant fetches and processes one tenant's batch
func (o *SyncOrchestrator) syncTenant(ctx context.Context, tenantID string) {
	calls, err := o.fetcher.ListCalls(ctx, tenantID, o.callLimit)
	if err != nil {
		log.Printf("[SyncOrchestrator] tenant %s: fetch failed, will retry next tick: %v", tenantID, err)
		return
	}

	fresh := make([]callsyncdomain.Call, 0, len(calls))
	for _, call := range calls {
		if !call.HasTranscript() {
			continue
		}
		if call.CallID == "" || call.PhoneNumberFrom == "" {
			log.Printf("[SyncOrchestrator] tenant %s: skipping call with missing fields (call_id=%q)", tenantID, call.CallID)
			continue
		}
		if o.cache != nil && o.cache.Seen(tenantID, call.CallID) {
			continue
		}
		exists, err := o.store.ExistsByCallID(ctx, call.CallID)
		if err != nil {
			log.Printf("[SyncOrchestrator] tenant %s: exists probe failed for call %s: %v", tenantID, call.CallID, err)
			continue
		}
		if exists {
			if o.cache != nil {
				o.cache.Mark(tenantID, call.CallID)
			}
			continue
		}
		fresh = append(fresh, call)
	}

	// Chronological order matters: same-caller slots must be upserted
	// oldest first
	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].StartedAt().Before(fresh[j].StartedAt())
	})

	for _, call := range fresh {
		if err := o.processCall(ctx, tenantID, call); err != nil {
			log.Printf("[SyncOrchestrator] tenant %s: call %s failed: %v", tenantID, call.CallID, err)
			continue
		}
		if o.cache != nil {
			o.cache.Mark(tenantID, call.CallID)
		}
	}
}

// processCall runs one call through the pipeline and upserts the result
func (o *SyncOrchestrator) processCall(ctx context.Context, tenantID string, call callsyncdomain.Call) error {
	summary := o.summarizer.Summarize(ctx, call.Transcript)
	category := o.classifier.Classify(ctx, summary)

	details := extract.NegativeSentence
	if category == appointmentdomain.CategoryAppointment {
		// Second model call, grounded with the call's own date as the
		// "today" reference so relative dates resolve correctly
		answer, err := o.chat.Chat(ctx, extract.ExtractionPrompt(summary, call.StartedAt(), true))
		if err != nil {
			// Nothing stored yet; the call stays eligible for the next tick
			return fmt.Errorf("extraction chat failed: %w", err)
		}
		details = answer
	}

	result := extract.Parse(details)
	if category == appointmentdomain.CategoryAppointment && result.DateTime == nil {
		// Keep the classifier's category, record a null slot
		log.Printf("[SyncOrchestrator] tenant %s: call %s classified appointment but no slot parsed (prefix=%v): %q",
			tenantID, call.CallID, result.SchedulePrefixOnly, details)
	}

	record := &appointmentdomain.Appointment{
		CallID:                call.CallID,
		TenantID:              tenantID,
		PhoneNumber:           call.PhoneNumberFrom,
		TranscriptSummary:     summary,
		AppointmentDetails:    details,
		CallTime:              call.StartedAt(),
		LisaExtractedDateTime: result.DateTime,
		CallType:              result.CallType,
		CallCategory:          category,
		// AppointmentStatus left empty: the store defaults new records
		// to pending and preserves operator-set values on update
	}

	if _, err := o.store.Upsert(ctx, record); err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}
