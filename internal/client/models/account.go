// Package models defines the value types shared across the portal client:
// linked accounts, the freshly fetched account universe, the persisted
// active selection, and the stored credential pair.
package models

// Account is one linked holding identity visible to the signed-in investor.
// Identity is the (ClientCode, ClientID) pair; ClientCode alone is not
// guaranteed stable across family-group remaps on the backend.
type Account struct {
	ClientID       string `json:"clientId"`
	ClientCode     string `json:"clientCode"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile,omitempty"`
	DisplayName    string `json:"displayName"`
	HolderName     string `json:"holderName,omitempty"`
	Relation       string `json:"relation,omitempty"`
	IsHeadOfFamily bool   `json:"isHeadOfFamily"`
	GroupID        string `json:"groupId,omitempty"`
	GroupName      string `json:"groupName,omitempty"`
	AccountType    string `json:"accountType"`
}

// SameIdentity reports whether the account is the same account as the one
// identified by (code, id). Both components must match.
func (a Account) SameIdentity(code, id string) bool {
	return a.ClientCode == code && a.ClientID == id
}

// AccountUniverse is the full set of accounts visible to the signed-in
// identity, as returned by one account-data fetch. It is replaced wholesale
// on every fetch and never mutated in place.
type AccountUniverse struct {
	Accounts       []Account
	IsHeadOfFamily bool
}
