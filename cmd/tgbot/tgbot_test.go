package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_Calc(t *testing.T) {
	reply := Respond("/calc aniline 14.634")
	assert.Contains(t, reply, "Vr = 102.438 m³")
	assert.Contains(t, reply, "D = 4.43 m, H = 6.645 m (7.443 m with safety)")
	assert.Contains(t, reply, "Design pressure = 197.03 kPa")
	assert.Contains(t, reply, "t_shell = 2.57 mm, t_roof = 1.28 mm, t_base = 2 mm")
	assert.Contains(t, reply, "Material: SS")
}

func TestRespond_CalcArgs(t *testing.T) {
	assert.Contains(t, Respond("/calc@TankBot Aniline 14.634 7 1"), "Vr = 102.438 m³")
	assert.Contains(t, Respond("/calc aniline"), "expected 2 to 4 arguments, got 1")
	assert.Contains(t, Respond("/calc water 3"), `unknown chemical "water"`)
	assert.Contains(t, Respond("/calc aniline ten"), `"ten" is not a number`)
	assert.Contains(t, Respond("/calc aniline 5 0"), "Storage days must be positive")
}

func TestRespond_Other(t *testing.T) {
	assert.Equal(t, "", Respond("hello"))
	assert.Equal(t, "", Respond("   "))
	assert.Equal(t, helpText, Respond("/start"))
	assert.Equal(t, "Unknown command. Try /help", Respond("/launch"))

	chems := Respond("/chemicals")
	assert.Len(t, strings.Split(chems, "\n"), 6)
	assert.Contains(t, chems, "acetanilide - Acetanilide, 1140 kg/m³, HDPE")

	assert.True(t, strings.HasPrefix(Respond("/preset b"), "Acetic Anhydride (Reactant)\n"))
	assert.Equal(t, "Unknown preset Q", Respond("/preset Q"))
	assert.Equal(t, "Usage: /preset <A-F>", Respond("/preset"))
}

type fakeAPI struct {
	mu      sync.Mutex
	batches [][]Update
	sent    map[int64][]string
}

func (f *fakeAPI) GetUpdates(ctx context.Context, offset int) ([]Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func TestBot_Run(t *testing.T) {
	api := &fakeAPI{
		sent: map[int64][]string{},
		batches: [][]Update{{
			{UpdateID: 1, Message: &Message{Chat: Chat{ID: 7}, Text: "/help"}},
			{UpdateID: 2, Message: &Message{Chat: Chat{ID: 7}, Text: "just chatting"}},
			{UpdateID: 3},
			{UpdateID: 4, Message: &Message{Chat: Chat{ID: 9}, Text: "/preset A"}},
		}},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	bot := &Bot{API: api, Log: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	bot.Run(ctx, time.Millisecond)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{helpText}, api.sent[7])
	require.Len(t, api.sent[9], 1)
	assert.Contains(t, api.sent[9][0], "Aniline (Reactant)")
}

func TestTelegramAPI(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getUpdates":
			assert.Equal(t, "5", r.URL.Query().Get("offset"))
			w.Write([]byte(`{"ok":true,"result":[{"update_id":5,"message":{"message_id":1,"chat":{"id":42},"text":"/help"}}]}`))
		case "/sendMessage":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			w.Write([]byte(`{"ok":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	api := &TelegramAPI{BaseURL: srv.URL}
	updates, err := api.GetUpdates(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(42), updates[0].Message.Chat.ID)

	require.NoError(t, api.SendMessage(context.Background(), 42, "hi"))
	assert.Equal(t, "hi", sent["text"])
	assert.Equal(t, 42.0, sent["chat_id"])
}

func TestTelegramAPI_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := (&TelegramAPI{BaseURL: srv.URL}).GetUpdates(context.Background(), 0)
	assert.EqualError(t, err, "getUpdates: Unauthorized")
}
