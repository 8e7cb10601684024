package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
)

func acct(code, id string, head bool) models.Account {
	return models.Account{ClientCode: code, ClientID: id, IsHeadOfFamily: head, DisplayName: code}
}

func TestResolve_EmptyUniverse(t *testing.T) {
	res := Resolve(models.AccountUniverse{}, &models.ActiveSelection{ClientCode: "QC001", ClientID: "1"})
	assert.Nil(t, res.Account)
	assert.Equal(t, ReasonNone, res.Reason)
}

func TestResolve_PriorMatchBeatsEverything(t *testing.T) {
	u := models.AccountUniverse{
		IsHeadOfFamily: true,
		Accounts: []models.Account{
			acct("QF001", "1", true),
			acct("QF002", "2", false),
			acct("QF003", "3", false),
		},
	}
	prior := &models.ActiveSelection{ClientCode: "QF003", ClientID: "3"}

	res := Resolve(u, prior)
	require.NotNil(t, res.Account)
	assert.Equal(t, "QF003", res.Account.ClientCode)
	assert.Equal(t, ReasonPriorMatch, res.Reason)
}

func TestResolve_PriorMatchRequiresBothIdentityComponents(t *testing.T) {
	u := models.AccountUniverse{
		Accounts: []models.Account{
			acct("QC001", "1", false),
			acct("QC002", "2", false),
		},
	}
	// same code, different id: a remap happened, the stored selection is stale
	prior := &models.ActiveSelection{ClientCode: "QC002", ClientID: "99"}

	res := Resolve(u, prior)
	require.NotNil(t, res.Account)
	assert.Equal(t, "QC001", res.Account.ClientCode)
	assert.Equal(t, ReasonFirstInOrder, res.Reason)
}

func TestResolve_HeadOfFamily(t *testing.T) {
	u := models.AccountUniverse{
		IsHeadOfFamily: true,
		Accounts: []models.Account{
			acct("QF002", "2", false),
			acct("QF001", "1", true),
		},
	}

	res := Resolve(u, nil)
	require.NotNil(t, res.Account)
	assert.Equal(t, "QF001", res.Account.ClientCode)
	assert.Equal(t, ReasonHeadOfFamily, res.Reason)
}

func TestResolve_FamilyWithoutFlaggedHeadFallsBack(t *testing.T) {
	u := models.AccountUniverse{
		IsHeadOfFamily: true,
		Accounts: []models.Account{
			acct("QF002", "2", false),
			acct("QF003", "3", false),
		},
	}

	res := Resolve(u, nil)
	require.NotNil(t, res.Account)
	assert.Equal(t, "QF002", res.Account.ClientCode)
	assert.Equal(t, ReasonFirstInOrder, res.Reason)
}

func TestResolve_MultipleHeadsIsDefensiveFallback(t *testing.T) {
	u := models.AccountUniverse{
		IsHeadOfFamily: true,
		Accounts: []models.Account{
			acct("QF002", "2", true),
			acct("QF001", "1", true),
		},
	}

	res := Resolve(u, nil)
	require.NotNil(t, res.Account)
	assert.Equal(t, "QF002", res.Account.ClientCode)
	assert.Equal(t, ReasonFirstInOrder, res.Reason)
}

func TestResolve_IndividualFirstInOrder(t *testing.T) {
	u := models.AccountUniverse{
		Accounts: []models.Account{
			acct("QC007", "7", false),
			acct("QC001", "1", false),
		},
	}

	res := Resolve(u, nil)
	require.NotNil(t, res.Account)
	assert.Equal(t, "QC007", res.Account.ClientCode)
	assert.Equal(t, ReasonFirstInOrder, res.Reason)
}

func TestResolve_Deterministic(t *testing.T) {
	u := models.AccountUniverse{
		IsHeadOfFamily: true,
		Accounts: []models.Account{
			acct("QF001", "1", true),
			acct("QF002", "2", false),
		},
	}
	prior := &models.ActiveSelection{ClientCode: "QF002", ClientID: "2"}

	first := Resolve(u, prior)
	second := Resolve(u, prior)
	require.NotNil(t, first.Account)
	require.NotNil(t, second.Account)
	assert.Equal(t, *first.Account, *second.Account)
	assert.Equal(t, first.Reason, second.Reason)
}
