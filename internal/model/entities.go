package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Kind names an entity collection in the store.
type Kind string

const (
	KindUser         Kind = "user"
	KindService      Kind = "service"
	KindProposal     Kind = "proposal"
	KindReview       Kind = "review"
	KindTransaction  Kind = "transaction"
	KindPayment      Kind = "payment"
	KindPlatform     Kind = "platform"
	KindToken        Kind = "token"
	KindFeePayment   Kind = "fee_payment"
	KindFeeClaim     Kind = "fee_claim"
	KindPlatformGain Kind = "platform_gain"
	KindUserGain     Kind = "user_gain"
	KindProtocol     Kind = "protocol"
	KindEvidence     Kind = "evidence"
	KindKeyword      Kind = "keyword"
	KindProgress     Kind = "progress"
)

// ServiceStatus is the lifecycle state of a service.
type ServiceStatus string

const (
	ServiceOpened    ServiceStatus = "Opened"
	ServiceFilled    ServiceStatus = "Filled"
	ServiceConfirmed ServiceStatus = "Confirmed"
	ServiceFinished  ServiceStatus = "Finished"
	ServiceRejected  ServiceStatus = "Rejected"
)

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "Pending"
	ProposalRejected ProposalStatus = "Rejected"
)

// TransactionStatus is the dispute state of an escrow transaction.
type TransactionStatus string

const (
	TransactionNoDispute       TransactionStatus = "NoDispute"
	TransactionWaitingSender   TransactionStatus = "WaitingSender"
	TransactionWaitingReceiver TransactionStatus = "WaitingReceiver"
	TransactionResolved        TransactionStatus = "Resolved"
)

// FeePaymentType tells origin platform fees apart from platform fees.
type FeePaymentType string

const (
	FeeOriginPlatform FeePaymentType = "OriginPlatform"
	FeePlatform       FeePaymentType = "Platform"
)

// User is a marketplace profile.
type User struct {
	ID              string          `json:"id"`
	Address         string          `json:"address"`
	Handle          string          `json:"handle"`
	WithPoh         bool            `json:"withPoh"`
	NumReviews      *big.Int        `json:"numReviews"`
	NumGivenReviews *big.Int        `json:"numGivenReviews"`
	Rating          decimal.Decimal `json:"rating"`
	CreatedAt       uint64          `json:"createdAt"`
	UpdatedAt       uint64          `json:"updatedAt"`
}

// Service is a job posted between a buyer and a seller.
type Service struct {
	ID        string        `json:"id"`
	Status    ServiceStatus `json:"status"`
	Buyer     string        `json:"buyer,omitempty"`
	Seller    string        `json:"seller,omitempty"`
	Sender    string        `json:"sender,omitempty"`
	Recipient string        `json:"recipient,omitempty"`
	Platform  string        `json:"platform,omitempty"`
	URI       string        `json:"uri"`
	CreatedAt uint64        `json:"createdAt"`
	UpdatedAt uint64        `json:"updatedAt"`
}

// Proposal is a seller's offer on a service.
type Proposal struct {
	ID         string         `json:"id"`
	Status     ProposalStatus `json:"status"`
	Service    string         `json:"service"`
	Seller     string         `json:"seller,omitempty"`
	RateToken  string         `json:"rateToken"`
	RateAmount *big.Int       `json:"rateAmount"`
	URI        string         `json:"uri"`
	CreatedAt  uint64         `json:"createdAt"`
	UpdatedAt  uint64         `json:"updatedAt"`
}

// Review is a minted review token.
type Review struct {
	ID          string   `json:"id"`
	Service     string   `json:"service"`
	To          string   `json:"to"`
	Rating      *big.Int `json:"rating"`
	CID         string   `json:"cid"`
	Description string   `json:"description"`
	CreatedAt   uint64   `json:"createdAt"`
}

// Transaction is an escrow transaction.
type Transaction struct {
	ID                          string            `json:"id"`
	Sender                      string            `json:"sender,omitempty"`
	Receiver                    string            `json:"receiver,omitempty"`
	Service                     string            `json:"service,omitempty"`
	Token                       string            `json:"token"`
	Amount                      *big.Int          `json:"amount"`
	ProtocolEscrowFeeRate       int               `json:"protocolEscrowFeeRate"`
	OriginPlatformEscrowFeeRate int               `json:"originPlatformEscrowFeeRate"`
	PlatformEscrowFeeRate       int               `json:"platformEscrowFeeRate"`
	SenderFee                   *big.Int          `json:"senderFee"`
	ReceiverFee                 *big.Int          `json:"receiverFee"`
	LastInteraction             uint64            `json:"lastInteraction"`
	Status                      TransactionStatus `json:"status"`
	Arbitrator                  string            `json:"arbitrator"`
	ArbitratorExtraData         string            `json:"arbitratorExtraData"`
	ArbitrationFeeTimeout       *big.Int          `json:"arbitrationFeeTimeout"`
}

// Payment accumulates escrow payments of one type for a transaction.
type Payment struct {
	ID          string   `json:"id"`
	Service     string   `json:"service"`
	Transaction string   `json:"transaction,omitempty"`
	Amount      *big.Int `json:"amount"`
	PaymentType string   `json:"paymentType"`
	CreatedAt   uint64   `json:"createdAt"`
}

// Platform is a marketplace operator.
type Platform struct {
	ID                    string   `json:"id"`
	Address               string   `json:"address"`
	Name                  string   `json:"name"`
	PlatformEscrowFeeRate int      `json:"platformEscrowFeeRate"`
	Arbitrator            string   `json:"arbitrator"`
	ArbitratorExtraData   string   `json:"arbitratorExtraData"`
	ArbitrationFeeTimeout *big.Int `json:"arbitrationFeeTimeout"`
	CreatedAt             uint64   `json:"createdAt"`
	UpdatedAt             uint64   `json:"updatedAt"`
}

// Token is an ERC20 asset (or the native asset placeholder).
type Token struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
	Allowed  bool   `json:"allowed"`
}

// FeePayment is a cumulative fee paid to a platform.
type FeePayment struct {
	ID       string         `json:"id"`
	Type     FeePaymentType `json:"type"`
	Platform string         `json:"platform,omitempty"`
	Service  string         `json:"service,omitempty"`
	Token    string         `json:"token,omitempty"`
	Amount   *big.Int       `json:"amount"`
}

// FeeClaim is the cumulative amount claimed by a platform.
type FeeClaim struct {
	ID       string   `json:"id"`
	Platform string   `json:"platform,omitempty"`
	Token    string   `json:"token,omitempty"`
	Amount   *big.Int `json:"amount"`
}

// PlatformGain is the cumulative fee income of a platform.
type PlatformGain struct {
	ID                         string   `json:"id"`
	Platform                   string   `json:"platform,omitempty"`
	Token                      string   `json:"token,omitempty"`
	TotalOriginPlatformFeeGain *big.Int `json:"totalOriginPlatformFeeGain"`
	TotalPlatformFeeGain       *big.Int `json:"totalPlatformFeeGain"`
}

// UserGain is the cumulative income of a user.
type UserGain struct {
	ID        string   `json:"id"`
	User      string   `json:"user"`
	Token     string   `json:"token,omitempty"`
	TotalGain *big.Int `json:"totalGain"`
}

// Protocol holds protocol-wide rates and totals. There is exactly one.
type Protocol struct {
	ID                          string   `json:"id"`
	UserMintFee                 *big.Int `json:"userMintFee"`
	PlatformMintFee             *big.Int `json:"platformMintFee"`
	ProtocolEscrowFeeRate       int      `json:"protocolEscrowFeeRate"`
	OriginPlatformEscrowFeeRate int      `json:"originPlatformEscrowFeeRate"`
	TotalMintFees               *big.Int `json:"totalMintFees"`
}

// Evidence is a dispute evidence submission.
type Evidence struct {
	ID          string `json:"id"`
	Transaction string `json:"transaction"`
	Party       string `json:"party,omitempty"`
	URI         string `json:"uri"`
	CreatedAt   uint64 `json:"createdAt"`
}

// Keyword is an existence-only search term.
type Keyword struct {
	ID string `json:"id"`
}
