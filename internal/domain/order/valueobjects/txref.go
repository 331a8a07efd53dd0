package valueobjects

// UnknownTxHash is the sentinel recorded when the chain-index response
// carries neither a txHash nor an extrinsicHash.
const UnknownTxHash = "unknown"

// TxRef identifies the chain transaction that settled a payment. It is
// decoded once at the chain-index boundary so the rest of the system never
// deals with the txHash/extrinsicHash field variance.
type TxRef struct {
	hash string
}

// NewTxRef picks the transaction identifier from the two hash fields the
// chain-index service may return, preferring txHash.
func NewTxRef(txHash, extrinsicHash string) TxRef {
	switch {
	case txHash != "":
		return TxRef{hash: txHash}
	case extrinsicHash != "":
		return TxRef{hash: extrinsicHash}
	default:
		return TxRef{hash: UnknownTxHash}
	}
}

func (r TxRef) Hash() string {
	return r.hash
}
