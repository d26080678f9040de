// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/ubytes/appplatform/internal/application/port"
	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/domain/repository"
	"github.com/ubytes/appplatform/internal/logging"
)

// PermissionInput describes one permission request raised by hosted content.
type PermissionInput struct {
	Origin        string
	URL           string
	Type          entity.PermissionType
	UserInitiated bool
}

// PermissionOutcome is what the caller answers the native prompt with.
type PermissionOutcome struct {
	Decision entity.PermissionDecision
	// Persisted is true when the decision was stored; the caller mirrors it
	// into the request's save-in-profile flag.
	Persisted bool
	// Source names where the decision came from: "auto", "stored", "prompter" or "fallback".
	Source string
}

// HandlePermissionUseCase answers permission requests:
// auto-allow types → stored decision → prompter → persist when asked.
type HandlePermissionUseCase struct {
	permRepo   repository.PermissionRepository
	mu       sync.RWMutex
	prompter port.PermissionPrompter
	remember bool
}

// NewHandlePermissionUseCase creates a new permission handling use case.
// permRepo may be nil, in which case nothing is looked up or stored.
func NewHandlePermissionUseCase(
	permRepo repository.PermissionRepository,
	prompter port.PermissionPrompter,
	remember bool,
) *HandlePermissionUseCase {
	return &HandlePermissionUseCase{
		permRepo: permRepo,
		prompter: prompter,
		remember: remember,
	}
}

// SetPrompter replaces the prompter, e.g. after a config reload.
func (uc *HandlePermissionUseCase) SetPrompter(prompter port.PermissionPrompter) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.prompter = prompter
}

// SetRemember toggles storing persistent prompter answers.
func (uc *HandlePermissionUseCase) SetRemember(remember bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.remember = remember
}

func (uc *HandlePermissionUseCase) current() (port.PermissionPrompter, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.prompter, uc.remember
}

// Execute decides a request. It never fails: lookup and prompter errors fall
// back to a denial that is not stored.
func (uc *HandlePermissionUseCase) Execute(ctx context.Context, in PermissionInput) PermissionOutcome {
	log := logging.FromContext(ctx).With().
		Str("component", "permission").
		Str("origin", in.Origin).
		Str("type", string(in.Type)).
		Logger()

	if in.Origin == "" {
		log.Warn().Msg("permission request with empty origin, denying")
		return PermissionOutcome{Decision: entity.PermissionDenied, Source: "fallback"}
	}
	if in.Type == entity.PermissionTypeUnknown || in.Type == "" {
		log.Warn().Msg("permission request of unknown type, denying")
		return PermissionOutcome{Decision: entity.PermissionDenied, Source: "fallback"}
	}
	if entity.IsAutoAllow(in.Type) {
		log.Debug().Msg("auto-allowing permission request")
		return PermissionOutcome{Decision: entity.PermissionGranted, Source: "auto"}
	}

	if record := uc.stored(ctx, in); record != nil {
		log.Debug().Str("decision", string(record.Decision)).Msg("using stored permission")
		return PermissionOutcome{Decision: record.Decision, Source: "stored"}
	}

	prompter, remember := uc.current()
	if prompter == nil {
		log.Warn().Msg("no prompter available, denying permission")
		return PermissionOutcome{Decision: entity.PermissionDenied, Source: "fallback"}
	}

	answer, err := prompter.Prompt(ctx, port.PermissionQuestion{
		Origin:        in.Origin,
		URL:           in.URL,
		Type:          in.Type,
		UserInitiated: in.UserInitiated,
	})
	if err != nil {
		log.Warn().Err(err).Msg("prompter failed, denying permission")
		return PermissionOutcome{Decision: entity.PermissionDenied, Source: "fallback"}
	}

	out := PermissionOutcome{Decision: answer.Decision, Source: "prompter"}
	if answer.Persistent && remember {
		out.Persisted = uc.persist(ctx, in, answer.Decision)
	}
	log.Debug().
		Str("decision", string(out.Decision)).
		Bool("persisted", out.Persisted).
		Msg("permission decided by prompter")
	return out
}

// stored returns a granted or denied record, or nil.
func (uc *HandlePermissionUseCase) stored(ctx context.Context, in PermissionInput) *entity.PermissionRecord {
	if uc.permRepo == nil || !entity.CanPersist(in.Type) {
		return nil
	}
	record, err := uc.permRepo.Get(ctx, in.Origin, in.Type)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("perm_type", string(in.Type)).Msg("failed to get stored permission")
		return nil
	}
	if record == nil || !record.Decision.CanStore() {
		return nil
	}
	return record
}

func (uc *HandlePermissionUseCase) persist(ctx context.Context, in PermissionInput, decision entity.PermissionDecision) bool {
	if uc.permRepo == nil || !entity.CanPersist(in.Type) || !decision.CanStore() {
		return false
	}

	record := &entity.PermissionRecord{
		Origin:    in.Origin,
		Type:      in.Type,
		Decision:  decision,
		UpdatedAt: time.Now().Unix(),
	}
	if err := uc.permRepo.Set(ctx, record); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("perm_type", string(in.Type)).
			Str("decision", string(decision)).
			Msg("failed to persist permission")
		return false
	}
	return true
}

// QueryPermissionState returns the stored decision, or prompt when none exists.
func (uc *HandlePermissionUseCase) QueryPermissionState(
	ctx context.Context,
	origin string,
	permType entity.PermissionType,
) entity.PermissionDecision {
	if entity.IsAutoAllow(permType) {
		return entity.PermissionGranted
	}
	if record := uc.stored(ctx, PermissionInput{Origin: origin, Type: permType}); record != nil {
		return record.Decision
	}
	return entity.PermissionPrompt
}
