package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, h *Handler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestServe_SendsLatestResult(t *testing.T) {
	conn := dial(t, &Handler{Window: 200 * time.Millisecond})

	in, err := tank.DefaultInput(chemical.Aniline)
	require.NoError(t, err)
	in.DailyVolumeM3 = 1
	require.NoError(t, conn.WriteJSON(in))
	in.DailyVolumeM3 = 14.634
	require.NoError(t, conn.WriteJSON(in))

	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	require.NotNil(t, m.Output)
	assert.InDelta(t, 4.43, m.Output.DiameterM, 1e-9)
}

func TestServe_BadPayload(t *testing.T) {
	conn := dial(t, &Handler{Window: 10 * time.Millisecond})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{oops")))

	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, "Invalid request payload", m.Error)
}

func TestEvaluate(t *testing.T) {
	th := &tank.Handler{}

	in, err := tank.DefaultInput(chemical.AceticAcid)
	require.NoError(t, err)
	m := Evaluate(th, in)
	require.NotNil(t, m.Output)
	assert.Empty(t, m.Error)

	in.TankCount = 0
	m = Evaluate(th, in)
	assert.Nil(t, m.Output)
	assert.Equal(t, []string{"Number of tanks must be positive"}, m.Errors)

	in.TankCount = 1
	in.GeometryMode = "Manual"
	m = Evaluate(th, in)
	assert.Equal(t, tank.ErrManualDimensions.Error(), m.Error)

	in.GeometryMode = tank.ModeDerived
	in.DailyVolumeM3 = 1e308
	m = Evaluate(th, in)
	assert.Nil(t, m.Output)
	assert.Equal(t, tank.ErrNonFinite.Error(), m.Error)
}
