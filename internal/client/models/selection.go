package models

// ActiveSelection is the denormalized snapshot of the chosen account that is
// persisted between runs and published to consumers. It always projects
// exactly one account from the latest universe.
type ActiveSelection struct {
	ClientCode  string
	ClientID    string
	Email       string
	Mobile      string
	DisplayName string
	HolderName  string
	AccountType string
}

// SelectionFromAccount projects an account into its persisted selection form.
func SelectionFromAccount(a Account) ActiveSelection {
	return ActiveSelection{
		ClientCode:  a.ClientCode,
		ClientID:    a.ClientID,
		Email:       a.Email,
		Mobile:      a.Mobile,
		DisplayName: a.DisplayName,
		HolderName:  a.HolderName,
		AccountType: a.AccountType,
	}
}
