package bot

import (
	"context"
	"strings"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/park285/cheese-chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/irisfast"
	"github.com/park285/cheese-chess-rules/internal/msgcat"
)

type sent struct {
	room string
	text string
}

type fakeSender struct {
	mu     sync.Mutex
	texts  []sent
	images int
}

func (f *fakeSender) SendText(_ context.Context, room, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, sent{room: room, text: message})
	return nil
}

func (f *fakeSender) SendImage(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images++
	return nil
}

func (f *fakeSender) last(t *testing.T) sent {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		t.Fatalf("nothing was sent")
	}
	return f.texts[len(f.texts)-1]
}

type staticPrefix string

func (p staticPrefix) Prefix() string { return string(p) }

type fixture struct {
	h   *Handler
	out *fakeSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat: %v", err)
	}
	out := &fakeSender{}
	mgr := game.NewManagerWithClient(rdb, game.WithRepository(game.NewMemoryRepository()))
	h := NewHandler(
		Options{Prefix: "!", AllowRoom: func(room string) bool { return room != "blocked" }},
		mgr,
		chesspresenter.NewViewer(nil),
		chesspresenter.NewFormatter(staticPrefix("!"), cat),
		chesspresenter.NewPresenter(out),
	)
	return &fixture{h: h, out: out}
}

func (f *fixture) say(t *testing.T, room, sender, userID, text string) sent {
	t.Helper()
	f.h.Handle(context.Background(), &irisfast.Message{
		Msg:    text,
		Room:   &room,
		Sender: &sender,
		JSON:   &irisfast.MessageJSON{UserID: userID},
	})
	return f.out.last(t)
}

func expectContains(t *testing.T, got sent, want string) {
	t.Helper()
	if !strings.Contains(got.text, want) {
		t.Fatalf("reply %q does not contain %q", got.text, want)
	}
}

func (f *fixture) startGame(t *testing.T) {
	t.Helper()
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 시작 @밥"), "앨리스님이 밥님에게 대국을 신청했습니다")
	expectContains(t, f.say(t, "room", "밥", "u2", "!체스 수락"), "체스 대국을 시작합니다")
}

func TestGameFlow(t *testing.T) {
	f := newFixture(t)
	f.startGame(t)

	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 이동 e2 e4"), "앨리스: e2 → e4")
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 이동 d2d4"), "지금은 상대 차례입니다.")
	expectContains(t, f.say(t, "room", "밥", "u2", "!체스 이동 e7-e5"), "밥: e7 → e5")
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 이동 a1 a3"), "이동 경로에 다른 기물이 있습니다.")
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 이동 z9 a3"), "잘못된 좌표입니다.")
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 이동 e4"), "잘못된 좌표입니다.")
	expectContains(t, f.say(t, "room", "밥", "u2", "!체스 점수"), "점수: 백 37.0 / 흑 37.0")
	expectContains(t, f.say(t, "room", "밥", "u2", "!체스 현황"), "진행 2수")

	got := f.say(t, "room", "밥", "u2", "!체스 기권")
	expectContains(t, got, "밥 기권, 앨리스 승리.")

	expectContains(t, f.say(t, "room", "밥", "u2", "!체스 현황"), "진행 중인 대국이 없습니다.")
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 기록"), "백 승 기권 (2수)")
}

func TestStartRejections(t *testing.T) {
	f := newFixture(t)
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 시작"), "상대를 지정해주세요.")
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 시작 @앨리스"), "자기 자신과는 대국할 수 없습니다.")
	expectContains(t, f.say(t, "room", "데이브", "u4", "!체스 수락"), "받은 대국 신청이 없습니다.")
	f.startGame(t)
	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 시작 @캐럴"), "이미 진행 중인 대국이 있습니다.")
}

func TestSharedDisplayNameCannotActForPlayer(t *testing.T) {
	f := newFixture(t)
	f.startGame(t)

	// same nickname as the white player, different account
	expectContains(t, f.say(t, "room", "앨리스", "u9", "!체스 기권"), "진행 중인 대국이 없습니다.")
	expectContains(t, f.say(t, "room", "앨리스", "u9", "!체스 이동 e2 e4"), "진행 중인 대국이 없습니다.")

	expectContains(t, f.say(t, "room", "앨리스", "u1", "!체스 이동 e2 e4"), "앨리스: e2 → e4")
	expectContains(t, f.say(t, "room", "밥", "u2", "!체스 현황"), "진행 1수")
}

func TestIgnoredMessages(t *testing.T) {
	f := newFixture(t)
	for _, tc := range []struct{ room, text string }{
		{"room", "체스 시작 @밥"},
		{"room", "!다른명령"},
		{"blocked", "!체스 도움말"},
	} {
		room, sender := tc.room, "앨리스"
		f.h.Handle(context.Background(), &irisfast.Message{Msg: tc.text, Room: &room, Sender: &sender})
	}
	if len(f.out.texts) != 0 {
		t.Fatalf("ignored messages produced replies: %+v", f.out.texts)
	}
	got := f.say(t, "room", "앨리스", "u1", "!체스")
	expectContains(t, got, "체스 명령어 안내")
}

func TestParseSquares(t *testing.T) {
	cases := []struct {
		args     []string
		from, to string
		ok       bool
	}{
		{[]string{"E2", "E4"}, "e2", "e4", true},
		{[]string{"g1f3"}, "g1", "f3", true},
		{[]string{"b8-c6"}, "b8", "c6", true},
		{[]string{"e2e"}, "", "", false},
		{nil, "", "", false},
	}
	for _, tc := range cases {
		from, to, ok := parseSquares(tc.args)
		if from != tc.from || to != tc.to || ok != tc.ok {
			t.Fatalf("parseSquares(%v) = %q %q %v", tc.args, from, to, ok)
		}
	}
}
