package market

const serviceRegistryABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "id", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "buyerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "initiatorId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "serviceDataUri", "type": "string"}
    ],
    "name": "ServiceCreated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "id", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "buyerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"}
    ],
    "name": "ServiceConfirmed",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "id", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "buyerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "transactionId", "type": "uint256"}
    ],
    "name": "ServiceFinished",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "id", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "buyerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"}
    ],
    "name": "ServiceRejected",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "proposalDataUri", "type": "string"},
      {"indexed": false, "internalType": "uint8", "name": "status", "type": "uint8"},
      {"indexed": false, "internalType": "address", "name": "rateToken", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "rateAmount", "type": "uint256"}
    ],
    "name": "ProposalCreated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "proposalDataUri", "type": "string"},
      {"indexed": false, "internalType": "address", "name": "rateToken", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "rateAmount", "type": "uint256"}
    ],
    "name": "ProposalUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "sellerId", "type": "uint256"},
      {"indexed": false, "internalType": "uint8", "name": "status", "type": "uint8"}
    ],
    "name": "ProposalRejected",
    "type": "event"
  }
]`

const reviewABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": true, "internalType": "uint256", "name": "toId", "type": "uint256"},
      {"indexed": true, "internalType": "uint256", "name": "tokenId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "rating", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "reviewUri", "type": "string"}
    ],
    "name": "Mint",
    "type": "event"
  }
]`

const profileIDABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "user", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "profileId", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "handle", "type": "string"},
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "fee", "type": "uint256"}
    ],
    "name": "Mint",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "user", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "profileId", "type": "uint256"}
    ],
    "name": "PohActivated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "mintFee", "type": "uint256"}
    ],
    "name": "MintFeeUpdated",
    "type": "event"
  }
]`

const platformIDABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "platformOwnerAddress", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "platformName", "type": "string"},
      {"indexed": false, "internalType": "uint256", "name": "fee", "type": "uint256"}
    ],
    "name": "Mint",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "uint16", "name": "platformEscrowFeeRate", "type": "uint16"}
    ],
    "name": "PlatformEscrowFeeRateUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "address", "name": "arbitrator", "type": "address"},
      {"indexed": false, "internalType": "bytes", "name": "extraData", "type": "bytes"}
    ],
    "name": "ArbitratorUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "arbitrationFeeTimeout", "type": "uint256"}
    ],
    "name": "ArbitrationFeeTimeoutUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "mintFee", "type": "uint256"}
    ],
    "name": "PlatformMintFeeUpdated",
    "type": "event"
  }
]`

const escrowABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "transactionId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "senderId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "receiverId", "type": "uint256"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "uint16", "name": "protocolEscrowFeeRate", "type": "uint16"},
      {"indexed": false, "internalType": "uint16", "name": "originPlatformEscrowFeeRate", "type": "uint16"},
      {"indexed": false, "internalType": "uint16", "name": "platformEscrowFeeRate", "type": "uint16"},
      {"indexed": false, "internalType": "address", "name": "arbitrator", "type": "address"},
      {"indexed": false, "internalType": "bytes", "name": "arbitratorExtraData", "type": "bytes"},
      {"indexed": false, "internalType": "uint256", "name": "arbitrationFeeTimeout", "type": "uint256"}
    ],
    "name": "TransactionCreated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "transactionId", "type": "uint256"},
      {"indexed": false, "internalType": "uint8", "name": "paymentType", "type": "uint8"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"}
    ],
    "name": "Payment",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "OriginServiceFeeRateReleased",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "serviceId", "type": "uint256"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "OriginValidatedProposalFeeRateReleased",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "platformId", "type": "uint256"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "FeesClaimed",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "transactionId", "type": "uint256"},
      {"indexed": false, "internalType": "uint8", "name": "party", "type": "uint8"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "ArbitrationFeePayment",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "transactionId", "type": "uint256"},
      {"indexed": false, "internalType": "uint8", "name": "party", "type": "uint8"}
    ],
    "name": "HasToPayFee",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "transactionId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "ruling", "type": "uint256"}
    ],
    "name": "RulingExecuted",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "arbitrator", "type": "address"},
      {"indexed": true, "internalType": "uint256", "name": "evidenceGroupID", "type": "uint256"},
      {"indexed": true, "internalType": "address", "name": "party", "type": "address"},
      {"indexed": false, "internalType": "string", "name": "evidence", "type": "string"}
    ],
    "name": "Evidence",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint16", "name": "protocolEscrowFeeRate", "type": "uint16"}
    ],
    "name": "ProtocolEscrowFeeRateUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint16", "name": "originPlatformEscrowFeeRate", "type": "uint16"}
    ],
    "name": "OriginPlatformEscrowFeeRateUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "address", "name": "tokenAddress", "type": "address"},
      {"indexed": false, "internalType": "bool", "name": "status", "type": "bool"}
    ],
    "name": "AllowedTokenListUpdated",
    "type": "event"
  }
]`
