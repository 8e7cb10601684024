package session

import (
	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
)

// Reason records which resolution rule selected the active account.
type Reason int

const (
	// ReasonNone means the universe was empty and nothing was selected.
	ReasonNone Reason = iota
	// ReasonPriorMatch means the stored selection was found in the universe.
	ReasonPriorMatch
	// ReasonHeadOfFamily means the family head was selected.
	ReasonHeadOfFamily
	// ReasonFirstInOrder means the first account in server order was selected.
	ReasonFirstInOrder
)

func (r Reason) String() string {
	switch r {
	case ReasonPriorMatch:
		return "prior-match"
	case ReasonHeadOfFamily:
		return "head-of-family"
	case ReasonFirstInOrder:
		return "first-in-order"
	default:
		return "none"
	}
}

// Resolution is the outcome of one resolution pass. Account points into the
// universe passed to Resolve, or is nil for an empty universe.
type Resolution struct {
	Account *models.Account
	Reason  Reason
}

// Resolve picks exactly one active account from a freshly fetched universe,
// given the previously persisted selection (nil when none is stored).
//
// The prior selection matches only on the full (clientCode, clientId) pair
// and takes priority over every other rule. In a family universe with no
// prior match, the account flagged head-of-family is selected; zero or more
// than one flagged account falls through to first-in-server-order (the
// multi-flag case should not occur and is handled defensively).
func Resolve(u models.AccountUniverse, prior *models.ActiveSelection) Resolution {
	if len(u.Accounts) == 0 {
		return Resolution{Reason: ReasonNone}
	}

	if prior != nil {
		for i := range u.Accounts {
			if u.Accounts[i].SameIdentity(prior.ClientCode, prior.ClientID) {
				return Resolution{Account: &u.Accounts[i], Reason: ReasonPriorMatch}
			}
		}
	}

	if u.IsHeadOfFamily {
		var head *models.Account
		for i := range u.Accounts {
			if !u.Accounts[i].IsHeadOfFamily {
				continue
			}
			if head != nil {
				head = nil
				break
			}
			head = &u.Accounts[i]
		}
		if head != nil {
			return Resolution{Account: head, Reason: ReasonHeadOfFamily}
		}
	}

	return Resolution{Account: &u.Accounts[0], Reason: ReasonFirstInOrder}
}
