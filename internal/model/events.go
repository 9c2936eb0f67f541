package model

// Event names emitted by the decoder and consumed by the projector.
const (
	EventServiceCreated                       = "ServiceCreated"
	EventServiceConfirmed                     = "ServiceConfirmed"
	EventServiceFinished                      = "ServiceFinished"
	EventServiceRejected                      = "ServiceRejected"
	EventProposalCreated                      = "ProposalCreated"
	EventProposalUpdated                      = "ProposalUpdated"
	EventProposalRejected                     = "ProposalRejected"
	EventReviewMinted                         = "ReviewMinted"
	EventProfileMinted                        = "ProfileMinted"
	EventPohActivated                         = "PohActivated"
	EventUserMintFeeUpdated                   = "UserMintFeeUpdated"
	EventPlatformMinted                       = "PlatformMinted"
	EventPlatformEscrowFeeRateUpdated         = "PlatformEscrowFeeRateUpdated"
	EventPlatformArbitratorUpdated            = "PlatformArbitratorUpdated"
	EventPlatformArbitrationFeeTimeoutUpdated = "PlatformArbitrationFeeTimeoutUpdated"
	EventPlatformMintFeeUpdated               = "PlatformMintFeeUpdated"
	EventTransactionCreated                   = "TransactionCreated"
	EventPayment                              = "Payment"
	EventOriginPlatformFeeReleased            = "OriginPlatformFeeReleased"
	EventPlatformFeeReleased                  = "PlatformFeeReleased"
	EventFeesClaimed                          = "FeesClaimed"
	EventArbitrationFeePaid                   = "ArbitrationFeePaid"
	EventHasToPayFee                          = "HasToPayFee"
	EventRulingExecuted                       = "RulingExecuted"
	EventEvidenceSubmitted                    = "EvidenceSubmitted"
	EventProtocolEscrowFeeRateUpdated         = "ProtocolEscrowFeeRateUpdated"
	EventOriginPlatformEscrowFeeRateUpdated   = "OriginPlatformEscrowFeeRateUpdated"
	EventAllowedTokenListUpdated              = "AllowedTokenListUpdated"
)

// Numeric ids and amounts are carried as base-10 strings.

// ServiceCreatedData is the decoded ServiceCreated payload.
type ServiceCreatedData struct {
	ID             string `json:"id"`
	BuyerID        string `json:"buyerId"`
	SellerID       string `json:"sellerId"`
	InitiatorID    string `json:"initiatorId"`
	PlatformID     string `json:"platformId"`
	ServiceDataURI string `json:"serviceDataUri"`
}

// ServiceStatusData covers ServiceConfirmed, ServiceFinished and ServiceRejected.
type ServiceStatusData struct {
	ID            string `json:"id"`
	BuyerID       string `json:"buyerId"`
	SellerID      string `json:"sellerId"`
	TransactionID string `json:"transactionId,omitempty"`
}

// ProposalData covers ProposalCreated, ProposalUpdated and ProposalRejected.
type ProposalData struct {
	ServiceID       string `json:"serviceId"`
	SellerID        string `json:"sellerId"`
	ProposalDataURI string `json:"proposalDataUri"`
	RateToken       string `json:"rateToken"`
	RateAmount      string `json:"rateAmount"`
	Status          int    `json:"status"`
}

// ReviewMintedData is the decoded review Mint payload.
type ReviewMintedData struct {
	ServiceID string `json:"serviceId"`
	ToID      string `json:"toId"`
	TokenID   string `json:"tokenId"`
	Rating    string `json:"rating"`
	ReviewURI string `json:"reviewUri"`
}

// ProfileMintedData is the decoded profile Mint payload.
type ProfileMintedData struct {
	User       string `json:"user"`
	ProfileID  string `json:"profileId"`
	Handle     string `json:"handle"`
	PlatformID string `json:"platformId"`
	Fee        string `json:"fee"`
}

// PohActivatedData is the decoded PohActivated payload.
type PohActivatedData struct {
	User      string `json:"user"`
	ProfileID string `json:"profileId"`
}

// MintFeeUpdatedData covers user and platform mint fee updates.
type MintFeeUpdatedData struct {
	MintFee string `json:"mintFee"`
}

// PlatformMintedData is the decoded platform Mint payload.
type PlatformMintedData struct {
	PlatformOwnerAddress string `json:"platformOwnerAddress"`
	PlatformID           string `json:"platformId"`
	PlatformName         string `json:"platformName"`
	Fee                  string `json:"fee"`
}

// PlatformFeeRateData is the decoded PlatformEscrowFeeRateUpdated payload.
type PlatformFeeRateData struct {
	PlatformID            string `json:"platformId"`
	PlatformEscrowFeeRate int    `json:"platformEscrowFeeRate"`
}

// PlatformArbitratorData is the decoded platform ArbitratorUpdated payload.
type PlatformArbitratorData struct {
	PlatformID string `json:"platformId"`
	Arbitrator string `json:"arbitrator"`
	ExtraData  string `json:"extraData"`
}

// PlatformFeeTimeoutData is the decoded platform ArbitrationFeeTimeoutUpdated payload.
type PlatformFeeTimeoutData struct {
	PlatformID            string `json:"platformId"`
	ArbitrationFeeTimeout string `json:"arbitrationFeeTimeout"`
}

// TransactionCreatedData is the decoded escrow TransactionCreated payload.
type TransactionCreatedData struct {
	TransactionID               string `json:"transactionId"`
	SenderID                    string `json:"senderId"`
	ReceiverID                  string `json:"receiverId"`
	Token                       string `json:"token"`
	Amount                      string `json:"amount"`
	ServiceID                   string `json:"serviceId"`
	PlatformID                  string `json:"platformId"`
	ProtocolEscrowFeeRate       int    `json:"protocolEscrowFeeRate"`
	OriginPlatformEscrowFeeRate int    `json:"originPlatformEscrowFeeRate"`
	PlatformEscrowFeeRate       int    `json:"platformEscrowFeeRate"`
	Arbitrator                  string `json:"arbitrator"`
	ArbitratorExtraData         string `json:"arbitratorExtraData"`
	ArbitrationFeeTimeout       string `json:"arbitrationFeeTimeout"`
}

// PaymentData is the decoded escrow Payment payload.
type PaymentData struct {
	TransactionID string `json:"transactionId"`
	PaymentType   int    `json:"paymentType"`
	Token         string `json:"token"`
	Amount        string `json:"amount"`
	ServiceID     string `json:"serviceId"`
}

// FeeReleasedData covers OriginPlatformFeeReleased and PlatformFeeReleased.
type FeeReleasedData struct {
	PlatformID string `json:"platformId"`
	ServiceID  string `json:"serviceId"`
	Token      string `json:"token"`
	Amount     string `json:"amount"`
}

// FeesClaimedData is the decoded FeesClaimed payload.
type FeesClaimedData struct {
	PlatformID string `json:"platformId"`
	Token      string `json:"token"`
	Amount     string `json:"amount"`
}

// ArbitrationFeeData is the decoded ArbitrationFeePayment payload.
type ArbitrationFeeData struct {
	TransactionID string `json:"transactionId"`
	Party         int    `json:"party"`
	Amount        string `json:"amount"`
}

// HasToPayFeeData is the decoded HasToPayFee payload.
type HasToPayFeeData struct {
	TransactionID string `json:"transactionId"`
	Party         int    `json:"party"`
}

// RulingExecutedData is the decoded RulingExecuted payload.
type RulingExecutedData struct {
	TransactionID string `json:"transactionId"`
	Ruling        string `json:"ruling"`
}

// EvidenceData is the decoded ERC-1497 Evidence payload.
type EvidenceData struct {
	Arbitrator      string `json:"arbitrator"`
	EvidenceGroupID string `json:"evidenceGroupID"`
	Party           string `json:"party"`
	Evidence        string `json:"evidence"`
}

// ProtocolFeeRateData covers the protocol-wide escrow fee rate updates.
type ProtocolFeeRateData struct {
	ProtocolEscrowFeeRate       int `json:"protocolEscrowFeeRate"`
	OriginPlatformEscrowFeeRate int `json:"originPlatformEscrowFeeRate"`
}

// AllowedTokenData is the decoded AllowedTokenListUpdated payload.
type AllowedTokenData struct {
	TokenAddress string `json:"tokenAddress"`
	Status       bool   `json:"status"`
}
