package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
	"talentGraph/internal/tokenmeta"
)

// ProgressID names the progress record committed alongside every event's writes.
const ProgressID = "projection"

// Options wires the collaborators of a Projector. Nil fields fall back to no-ops;
// a nil Resolver becomes one offline resolver shared by every event.
type Options struct {
	Resolver entity.MetadataResolver
	Registry ContentRegistry
	Recorder Recorder
	Logger   *zap.Logger
}

// Projector maps marketplace events onto the entity graph.
type Projector struct {
	store    entity.Store
	resolver entity.MetadataResolver
	registry ContentRegistry
	recorder Recorder
	logger   *zap.Logger
	handlers map[string]handler
}

// eventContext is the per-event state handed to every handler.
type eventContext struct {
	repo          *entity.Repository
	logger        *zap.Logger
	timestamp     uint64
	registrations []Registration
}

func (e *eventContext) registerForFetch(cid string, context map[string]string) {
	e.registrations = append(e.registrations, Registration{CID: cid, Context: context})
}

type handler func(ctx context.Context, ev *eventContext, payload json.RawMessage) error

func bind[T any](fn func(context.Context, *eventContext, T) error) handler {
	return func(ctx context.Context, ev *eventContext, payload json.RawMessage) error {
		var data T
		if err := json.Unmarshal(payload, &data); err != nil {
			return invalidEvent("decode payload: %v", err)
		}
		return fn(ctx, ev, data)
	}
}

func NewProjector(store entity.Store, opts Options) *Projector {
	p := &Projector{
		store:    store,
		resolver: opts.Resolver,
		registry: opts.Registry,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
	if p.registry == nil {
		p.registry = nopRegistry{}
	}
	if p.recorder == nil {
		p.recorder = nopRecorder{}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.resolver == nil {
		p.resolver = tokenmeta.NewResolver(nil, p.logger)
	}

	p.handlers = map[string]handler{
		model.EventServiceCreated:   bind(handleServiceCreated),
		model.EventServiceConfirmed: bind(transitionService(model.ServiceConfirmed)),
		model.EventServiceFinished:  bind(transitionService(model.ServiceFinished)),
		model.EventServiceRejected:  bind(transitionService(model.ServiceRejected)),
		model.EventProposalCreated:  bind(handleProposalCreated),
		model.EventProposalUpdated:  bind(handleProposalUpdated),
		model.EventProposalRejected: bind(handleProposalRejected),
		model.EventReviewMinted:     bind(handleReviewMinted),

		model.EventProfileMinted:                        bind(handleProfileMinted),
		model.EventPohActivated:                         bind(handlePohActivated),
		model.EventUserMintFeeUpdated:                   bind(handleUserMintFeeUpdated),
		model.EventPlatformMinted:                       bind(handlePlatformMinted),
		model.EventPlatformEscrowFeeRateUpdated:         bind(handlePlatformFeeRateUpdated),
		model.EventPlatformArbitratorUpdated:            bind(handlePlatformArbitratorUpdated),
		model.EventPlatformArbitrationFeeTimeoutUpdated: bind(handlePlatformFeeTimeoutUpdated),
		model.EventPlatformMintFeeUpdated:               bind(handlePlatformMintFeeUpdated),
		model.EventProtocolEscrowFeeRateUpdated:         bind(handleProtocolFeeRateUpdated),
		model.EventOriginPlatformEscrowFeeRateUpdated:   bind(handleOriginPlatformFeeRateUpdated),

		model.EventTransactionCreated:        bind(handleTransactionCreated),
		model.EventPayment:                   bind(handlePayment),
		model.EventOriginPlatformFeeReleased: bind(feeReleased(model.FeeOriginPlatform)),
		model.EventPlatformFeeReleased:       bind(feeReleased(model.FeePlatform)),
		model.EventFeesClaimed:               bind(handleFeesClaimed),
		model.EventArbitrationFeePaid:        bind(handleArbitrationFeePaid),
		model.EventHasToPayFee:               bind(handleHasToPayFee),
		model.EventRulingExecuted:            bind(handleRulingExecuted),
		model.EventEvidenceSubmitted:         bind(handleEvidenceSubmitted),
		model.EventAllowedTokenListUpdated:   bind(handleAllowedTokenListUpdated),
	}
	return p
}

// Apply projects a single event into the store.
//
// Events MUST be applied one at a time in canonical ledger order (block number,
// then position within the block). Apply performs no reordering.
//
// All writes of the event are committed together with the event's position, so
// a redelivered event at or before the stored progress is skipped. If the
// handler fails, for example with an entity.MissingDependencyError or
// ErrInvalidEvent, nothing of the event reaches the store and earlier state is
// untouched.
func (p *Projector) Apply(ctx context.Context, record model.TypedEventRecord) error {
	h, ok := p.handlers[record.EventName]
	if !ok {
		p.recorder.EventSkipped(record.EventName, "unsupported")
		p.logger.Debug("unsupported event", zap.String("event", record.EventName))
		return nil
	}

	pos := record.Position()
	session := entity.NewSession(p.store)
	var progress model.Position
	seen, err := session.Load(ctx, model.KindProgress, ProgressID, &progress)
	if err != nil {
		return err
	}
	if seen && !pos.After(progress) {
		p.recorder.EventSkipped(record.EventName, "already_applied")
		p.logger.Debug("event already applied",
			zap.String("event", record.EventName),
			zap.Stringer("position", pos),
			zap.Stringer("progress", progress),
		)
		return nil
	}

	logger := p.logger.With(zap.String("event", record.EventName), zap.Stringer("position", pos))
	ev := &eventContext{
		repo:      entity.NewRepository(session, p.resolver),
		logger:    logger,
		timestamp: record.Timestamp,
	}

	if err := h(ctx, ev, record.Decoded); err != nil {
		p.recorder.EventSkipped(record.EventName, SkipReason(err))
		return fmt.Errorf("%s at %s: %w", record.EventName, pos, err)
	}

	// Events without writes leave progress alone; redelivering them is a no-op.
	if session.Dirty() {
		if err := session.Save(model.KindProgress, ProgressID, pos); err != nil {
			return err
		}
	}
	created := session.Created()
	if err := session.Commit(ctx); err != nil {
		return err
	}
	for _, kind := range created {
		p.recorder.EntityCreated(kind)
	}
	p.recorder.EventApplied(record.EventName)

	for _, reg := range ev.registrations {
		if err := p.registry.RegisterForFetch(ctx, reg.CID, reg.Context); err != nil {
			ev.logger.Warn("register content for fetch", zap.String("cid", reg.CID), zap.Error(err))
		}
	}
	return nil
}

// Progress returns the position of the last event whose writes were committed.
func (p *Projector) Progress(ctx context.Context) (model.Position, bool, error) {
	var progress model.Position
	ok, err := entity.NewSession(p.store).Load(ctx, model.KindProgress, ProgressID, &progress)
	if err != nil {
		return model.Position{}, false, fmt.Errorf("load progress: %w", err)
	}
	return progress, ok, nil
}

// IndexKeywords records keywords extracted from off-chain content.
// Keywords are existence-only, so indexing the same set again changes nothing.
func (p *Projector) IndexKeywords(ctx context.Context, keywords []string) error {
	session := entity.NewSession(p.store)
	repo := entity.NewRepository(session, p.resolver)
	for _, keyword := range keywords {
		id := strings.ToLower(strings.TrimSpace(keyword))
		if id == "" {
			continue
		}
		if _, _, err := repo.GetOrCreateKeyword(ctx, id); err != nil {
			return err
		}
	}
	created := session.Created()
	if err := session.Commit(ctx); err != nil {
		return err
	}
	for _, kind := range created {
		p.recorder.EntityCreated(kind)
	}
	return nil
}
