package portfolio

// lot is a discrete quantity of an instrument acquired at a specific unit
// cost, tracked for FIFO matching.
type lot struct {
	quantity Quantity // remaining open quantity, always positive
	unitCost Money    // (price*quantity + fees) / quantity of the originating buy
}

// lots is an ordered queue of open lots, oldest first.
type lots []lot

// buy pushes a new lot to the back of the queue.
func (l lots) buy(quantity Quantity, unitCost Money) lots {
	return append(l, lot{quantity: quantity, unitCost: unitCost})
}

// sell consumes open lots from the front of the queue, oldest first. The
// tie-break is strictly chronological, never price-based. It returns the
// remaining queue, the realized gain sum(consumed * (price - unitCost)), and
// the quantity that could not be matched because the queue ran out.
func (l lots) sell(quantity Quantity, price Money) (remaining lots, realized Money, unmatched Quantity) {
	toSell := quantity
	for len(l) > 0 && toSell.IsPositive() {
		front := l[0]
		if front.quantity.GreaterThan(toSell) {
			// partial consumption of the oldest lot
			realized = realized.Add(price.Sub(front.unitCost).Mul(toSell))
			l[0].quantity = front.quantity.Sub(toSell)
			toSell = Q(0)
		} else {
			// the oldest lot is fully consumed
			realized = realized.Add(price.Sub(front.unitCost).Mul(front.quantity))
			toSell = toSell.Sub(front.quantity)
			l = l[1:]
		}
	}
	// whatever is left to sell found no lot to match: an implicit short with
	// no cost basis, it contributes nothing to the realized total.
	return l, realized, toSell
}

// realizedFIFO folds a transaction history, in insertion order, into the
// total realized gain and the total oversold quantity that never matched an
// open lot.
func realizedFIFO(history []Transaction) (realized Money, unmatched Quantity) {
	var open lots
	for _, t := range history {
		switch {
		case t.Quantity.IsPositive():
			unitCost := t.TotalCost().Div(t.Quantity)
			open = open.buy(t.Quantity, unitCost)
		case t.Quantity.IsNegative():
			var r Money
			var u Quantity
			// proceeds use the raw execution price, sell-side fees are not
			// attributed to realized gains in this model.
			open, r, u = open.sell(t.Quantity.Abs(), t.Price)
			realized = realized.Add(r)
			unmatched = unmatched.Add(u)
		}
	}
	return realized, unmatched
}
