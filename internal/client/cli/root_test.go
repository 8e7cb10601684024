package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/gateway"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
)

func TestGetStatus(t *testing.T) {
	gw := &fakeGateway{universe: testAccounts()}
	a := newTestApp(t, gw, false)

	assert.Equal(t, "(not logged in)", a.getStatus())

	a.creds.SetAccess(context.Background(), "tok")
	assert.Equal(t, "(logged in)", a.getStatus())

	require.NoError(t, a.session.Bootstrap(context.Background()))
	assert.Equal(t, "(QF0001)", a.getStatus())
}

func TestResumeOrLogin_ResumesStoredSession(t *testing.T) {
	gw := &fakeGateway{universe: testAccounts()}
	a := newTestApp(t, gw, false)
	a.creds.SetAccess(context.Background(), "stored-token")

	lines := capturePrintln(t)
	a.resumeOrLogin(context.Background())

	out := strings.Join(*lines, "")
	assert.Contains(t, out, "Resumed session")
	assert.Zero(t, gw.loginCalls, "no login prompt on a valid stored session")
	st := a.session.Snapshot()
	require.NotNil(t, st.Active)
}

func TestResumeOrLogin_ExpiredTokenFallsThroughToLogin(t *testing.T) {
	gw := &fakeGateway{universeErr: gateway.ErrUnauthorized}
	a := newTestApp(t, gw, false)
	a.creds.SetAccess(context.Background(), "stale-token")

	stubPrompts(t, []string{"exit"}, nil)
	lines := capturePrintln(t)

	a.resumeOrLogin(context.Background())

	out := strings.Join(*lines, "")
	assert.Contains(t, out, "expired")
	assert.Empty(t, a.creds.Access(context.Background()), "stale credential cleared")
}

func TestResumeOrLogin_OfflineKeepsStoredSession(t *testing.T) {
	gw := &fakeGateway{universeErr: gateway.ErrUnavailable}
	a := newTestApp(t, gw, false)
	a.creds.SetAccess(context.Background(), "stored-token")

	lines := capturePrintln(t)
	a.resumeOrLogin(context.Background())

	out := strings.Join(*lines, "")
	assert.Contains(t, out, "stored session kept")
	assert.Equal(t, "stored-token", a.creds.Access(context.Background()))
}

func TestRoot_ActiveChangeHookAnnouncesRemap(t *testing.T) {
	gw := &fakeGateway{universe: testAccounts()}
	a := newTestApp(t, gw, false)

	var announced []string
	a.session.OnActiveChange(func(prev, next *models.Account) {
		if prev == nil || next == nil {
			return
		}
		announced = append(announced, next.ClientCode)
	})

	a.creds.SetAccess(context.Background(), "tok")
	require.NoError(t, a.session.Bootstrap(context.Background()))
	a.session.SetSelectedClient(context.Background(), "QF0002")

	assert.Equal(t, []string{"QF0002"}, announced)
}
