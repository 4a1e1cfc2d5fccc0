package auction

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/crosschain"
)

// Implementation is one version of the bid acceptance policy. Auctions
// record the version they were bound to at creation and keep it for
// life; upgrading the factory only affects auctions created afterwards.
type Implementation interface {
	Version() string

	// ValidateBid decides whether a normalized bid may replace the
	// current highest bid. current is nil when no bid has been accepted
	// yet. Returns domain.ErrBidTooLow on rejection.
	ValidateBid(startPrice decimal.Decimal, current *decimal.Decimal, incoming decimal.Decimal) error
}

// ImplementationRegistry holds the bid policy versions known to this
// process. Registration happens at wiring time; lookups are concurrent.
type ImplementationRegistry struct {
	mu       sync.RWMutex
	versions map[string]Implementation
}

func NewImplementationRegistry(impls ...Implementation) *ImplementationRegistry {
	r := &ImplementationRegistry{versions: map[string]Implementation{}}
	for _, impl := range impls {
		r.versions[impl.Version()] = impl
	}
	return r
}

func (r *ImplementationRegistry) Register(impl Implementation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[impl.Version()] = impl
}

func (r *ImplementationRegistry) Get(version string) (Implementation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.versions[version]
	return impl, ok
}

// ImplementationState is the factory's current implementation binding,
// persisted so upgrades survive restarts. Singleton document.
type ImplementationState struct {
	Key       string    `bson:"key"`
	Version   string    `bson:"version"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

const ImplementationStateKey = "current"

type ImplementationRepo interface {
	GetCurrent(ctx.Ctx) (string, error)
	SetCurrent(c ctx.Ctx, version string) error
}

type CreateAuctionParams struct {
	Seller          domain.Address
	AssetContract   domain.Address
	AssetId         domain.TokenId
	PaymentCurrency domain.Currency
	StartTime       time.Time
	EndTime         time.Time
	StartPrice      decimal.Decimal
}

// SearchResult pages through the auction registry.
type SearchResult struct {
	Items []*Auction `json:"items"`
	Count int        `json:"count"`
}

// Factory creates and tracks auction instances under the current
// implementation version.
type Factory interface {
	// CreateAuction validates parameters and asset authorization, binds
	// a new auction to the current implementation and appends it to the
	// registry. Seller is the caller.
	CreateAuction(c ctx.Ctx, params *CreateAuctionParams) (*Auction, error)

	// GetAllAuctions returns a page of the registry in creation order
	// together with the total count.
	GetAllAuctions(c ctx.Ctx, offset, limit int) (*SearchResult, error)

	// UpgradeImplementation switches the version bound to subsequently
	// created auctions. Existing auctions are unaffected.
	UpgradeImplementation(c ctx.Ctx, version string) error

	// HandleCrossChainMessage creates an auction on behalf of a remote
	// caller. origin must be the configured router identity and the
	// message sender must be allow-listed, else
	// domain.ErrUnauthorizedOrigin.
	HandleCrossChainMessage(c ctx.Ctx, origin domain.Address, msg *crosschain.Message) (*Auction, error)
}
