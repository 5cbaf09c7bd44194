package ordering

// BuyerOrderState is the lifecycle of a buyer's order. A buyer has at most
// one order in the basket state; confirmation moves it to accepted.
type BuyerOrderState string

const (
	BuyerOrderStateBasket   BuyerOrderState = "basket"
	BuyerOrderStateAccepted BuyerOrderState = "accepted"
)

// SellerOrderState is the lifecycle of a single shop's slice of a buyer
// order. It starts as part of the basket and moves through fulfilment
// once the buyer confirms.
type SellerOrderState string

const (
	SellerOrderStateBasket    SellerOrderState = "basket"
	SellerOrderStateNew       SellerOrderState = "new"
	SellerOrderStateConfirmed SellerOrderState = "confirmed"
	SellerOrderStateAssembled SellerOrderState = "assembled"
	SellerOrderStateSent      SellerOrderState = "sent"
	SellerOrderStateDelivered SellerOrderState = "delivered"
	SellerOrderStateCanceled  SellerOrderState = "canceled"
)

// IsValid reports whether the value is a known seller order state
func (s SellerOrderState) IsValid() bool {
	switch s {
	case SellerOrderStateBasket, SellerOrderStateNew, SellerOrderStateConfirmed,
		SellerOrderStateAssembled, SellerOrderStateSent, SellerOrderStateDelivered,
		SellerOrderStateCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s SellerOrderState) IsTerminal() bool {
	return s == SellerOrderStateDelivered || s == SellerOrderStateCanceled
}

// CanTransitionTo checks if transition to the target state is allowed
func (s SellerOrderState) CanTransitionTo(target SellerOrderState) bool {
	transitions := map[SellerOrderState][]SellerOrderState{
		SellerOrderStateBasket:    {SellerOrderStateNew},
		SellerOrderStateNew:       {SellerOrderStateConfirmed, SellerOrderStateCanceled},
		SellerOrderStateConfirmed: {SellerOrderStateAssembled, SellerOrderStateCanceled},
		SellerOrderStateAssembled: {SellerOrderStateSent, SellerOrderStateCanceled},
		SellerOrderStateSent:      {SellerOrderStateDelivered, SellerOrderStateCanceled},
		SellerOrderStateDelivered: {},
		SellerOrderStateCanceled:  {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CancelableByBuyer reports whether the buyer may still back out.
// Once the seller has confirmed the order, cancellation is the
// seller's call.
func (s SellerOrderState) CancelableByBuyer() bool {
	return s == SellerOrderStateBasket || s == SellerOrderStateNew
}
