package history

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/auth"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(vd float64) tank.Input {
	in, _ := tank.DefaultInput(chemical.Aniline)
	in.DailyVolumeM3 = vd
	return in
}

func TestName(t *testing.T) {
	assert.Equal(t, "Aniline Tank - 14.634 m³/day", Name(input(14.634)))
	assert.Equal(t, "Aniline Tank - 10 m³/day", Name(input(10)))
	assert.Equal(t, "water Tank - 1 m³/day", Name(tank.Input{Chemical: "water", DailyVolumeM3: 1}))
}

func TestHistory_MostRecentFirstAndBounded(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	h := New(0, clock)

	for i := 1; i <= 12; i++ {
		h.Add(input(float64(i)), tank.Output{})
		clock.Advance(time.Minute)
	}

	list := h.List()
	require.Len(t, list, DefaultCapacity)
	assert.Equal(t, 12.0, list[0].Input.DailyVolumeM3)
	assert.Equal(t, 3.0, list[9].Input.DailyVolumeM3)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 11, 0, 0, time.UTC), list[0].Timestamp)
	assert.True(t, list[0].Timestamp.After(list[1].Timestamp))
}

func TestHistory_GetAndClear(t *testing.T) {
	h := New(3, clockwork.NewFakeClock())
	e := h.Add(input(5), tank.Output{DiameterM: 1})
	assert.NotEmpty(t, e.ID)

	got, err := h.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)

	_, err = h.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))

	assert.Equal(t, 1, h.Clear())
	assert.Empty(t, h.List())
	assert.NotNil(t, h.List())
}

func TestHistory_ListIsCopy(t *testing.T) {
	h := New(3, clockwork.NewFakeClock())
	h.Add(input(5), tank.Output{})
	list := h.List()
	list[0].Name = "changed"
	assert.Equal(t, "Aniline Tank - 5 m³/day", h.List()[0].Name)
}

func TestHistory_Concurrent(t *testing.T) {
	h := New(10, clockwork.NewFakeClock())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Add(input(float64(i+1)), tank.Output{})
			_ = h.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, h.Len())
}

func TestStore_SessionsAndMetrics(t *testing.T) {
	m := observability.NewMetricsForTesting()
	s := NewStore(StoreConfig{Capacity: 2}, clockwork.NewFakeClock(), m)

	s.Add("a", input(1), tank.Output{})
	s.Add("a", input(2), tank.Output{})
	s.Add("a", input(3), tank.Output{})
	s.Add("b", input(4), tank.Output{})

	assert.Len(t, s.List("a"), 2)
	assert.Len(t, s.List("b"), 1)
	assert.Equal(t, 2, s.Sessions())
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HistoryEntries))

	assert.Equal(t, 2, s.Clear("a"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryEntries))
}

func TestStore_ReadsDoNotCreateSessions(t *testing.T) {
	s := NewStore(StoreConfig{}, clockwork.NewFakeClock(), nil)

	assert.Empty(t, s.List("ghost"))
	assert.NotNil(t, s.List("ghost"))
	assert.Zero(t, s.Clear("ghost"))
	got, err := s.Select("ghost", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	_, err = s.Select("ghost", []string{"x"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := s.Lookup("ghost")
	assert.False(t, ok)

	assert.Zero(t, s.Sessions())
}

func TestStore_IdleSessionsExpire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := observability.NewMetricsForTesting()
	s := NewStore(StoreConfig{IdleTimeout: time.Hour}, clock, m)

	s.Add("old", input(1), tank.Output{})
	s.Add("old", input(2), tank.Output{})
	clock.Advance(30 * time.Minute)
	s.Add("active", input(3), tank.Output{})
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HistoryEntries))

	// Reading keeps a session alive.
	clock.Advance(45 * time.Minute)
	assert.Len(t, s.List("active"), 1)

	clock.Advance(20 * time.Minute)
	_, ok := s.Lookup("old")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Sessions())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryEntries))

	h, ok := s.Lookup("active")
	require.True(t, ok)
	assert.Equal(t, 1, h.Len())

	// Expired sessions nobody asks for again are swept when a new
	// session is created.
	clock.Advance(2 * time.Hour)
	s.Add("new", input(4), tank.Output{})
	assert.Equal(t, 1, s.Sessions())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryEntries))
}

func TestStore_MaxSessionsDropsLeastRecentlyUsed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := observability.NewMetricsForTesting()
	s := NewStore(StoreConfig{MaxSessions: 2}, clock, m)

	s.Add("a", input(1), tank.Output{})
	clock.Advance(time.Second)
	s.Add("b", input(2), tank.Output{})
	clock.Advance(time.Second)
	s.List("a")
	clock.Advance(time.Second)
	s.Add("c", input(3), tank.Output{})

	assert.Equal(t, 2, s.Sessions())
	_, ok := s.Lookup("b")
	assert.False(t, ok)
	assert.Len(t, s.List("a"), 1)
	assert.Len(t, s.List("c"), 1)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HistoryEntries))
}

func TestStore_ConcurrentAddsKeepGaugeExact(t *testing.T) {
	m := observability.NewMetricsForTesting()
	s := NewStore(StoreConfig{Capacity: 3}, clockwork.NewFakeClock(), m)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(strconv.Itoa(i%4), input(float64(i+1)), tank.Output{})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, s.Sessions())
	assert.Equal(t, 12.0, testutil.ToFloat64(m.HistoryEntries))
}

func TestHistory_AddReportsDrop(t *testing.T) {
	h := New(2, clockwork.NewFakeClock())
	_, dropped := h.add(input(1), tank.Output{})
	assert.False(t, dropped)
	_, dropped = h.add(input(2), tank.Output{})
	assert.False(t, dropped)
	_, dropped = h.add(input(3), tank.Output{})
	assert.True(t, dropped)
	assert.Equal(t, 2, h.Len())
}

func TestSelect(t *testing.T) {
	h := New(5, clockwork.NewFakeClock())
	a := h.Add(input(1), tank.Output{})
	b := h.Add(input(2), tank.Output{})

	got, err := Select(h, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []Entry{a, b}, got)

	got, err = Select(h, nil)
	require.NoError(t, err)
	assert.Equal(t, []Entry{b, a}, got)

	_, err = Select(h, []string{"nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func withSession(r *http.Request, sid string) *http.Request {
	return r.WithContext(auth.WithSessionID(r.Context(), sid))
}

func TestHandler_SaveListClear(t *testing.T) {
	h := &Handler{Store: NewStore(StoreConfig{}, clockwork.NewFakeClock(), nil)}

	body, err := json.Marshal(input(14.634))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.Save(rec, withSession(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), "s1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var e Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "Aniline Tank - 14.634 m³/day", e.Name)
	assert.InDelta(t, 4.43, e.Output.DiameterM, 1e-9)

	rec = httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil), "s1"))
	var list []Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Another session sees nothing.
	rec = httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil), "s2"))
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Clear(rec, withSession(httptest.NewRequest(http.MethodDelete, "/", nil), "s1"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, h.Store.List("s1"))
}

func TestHandler_SaveInvalid(t *testing.T) {
	h := &Handler{Store: NewStore(StoreConfig{}, nil, nil)}
	in := input(0)
	body, _ := json.Marshal(in)
	rec := httptest.NewRecorder()
	h.Save(rec, withSession(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), "s1"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Daily volume must be positive")
	assert.Empty(t, h.Store.List("s1"))
}

func TestHandler_SaveNamesEachEntry(t *testing.T) {
	h := &Handler{Store: NewStore(StoreConfig{}, nil, nil)}
	for i := 1; i <= 3; i++ {
		body, _ := json.Marshal(input(float64(i)))
		rec := httptest.NewRecorder()
		h.Save(rec, withSession(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), "s"))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	list := h.Store.List("s")
	for i, e := range list {
		assert.Equal(t, "Aniline Tank - "+strconv.Itoa(3-i)+" m³/day", e.Name)
	}
}
