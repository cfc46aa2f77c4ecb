package chesspresenter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/msgcat"
	"github.com/park285/cheese-chess-rules/internal/util"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

const (
	chessHelpInstruction    = "♞ 체스 명령어 안내"
	chessResultsInstruction = "♜ 최근 대국"

	emptySquare = "·"
)

// PrefixProvider exposes the Prefix that Kakao messages should use.
type PrefixProvider interface {
	Prefix() string
}

// Formatter renders game snapshots into Kakao-friendly text blocks.
type Formatter struct {
	prefixProvider PrefixProvider
	catalog        *msgcat.Catalog
}

func NewFormatter(provider PrefixProvider, catalog *msgcat.Catalog) *Formatter {
	return &Formatter{prefixProvider: provider, catalog: catalog}
}

func (f *Formatter) Prefix() string {
	if f == nil || f.prefixProvider == nil {
		return ""
	}
	return strings.TrimSpace(f.prefixProvider.Prefix())
}

func (f *Formatter) text(key string, data any) string {
	if f == nil || f.catalog == nil {
		return key
	}
	return f.catalog.Text(key, data)
}

// TeamLabel is the localized name of a side ("white" / "black").
func (f *Formatter) TeamLabel(team string) string {
	switch strings.ToLower(strings.TrimSpace(team)) {
	case "black":
		return f.text("team.black", nil)
	default:
		return f.text("team.white", nil)
	}
}

// Board draws the grid with rank 8 on top.
func (f *Formatter) Board(state *chessdto.GameState) string {
	if state == nil {
		return ""
	}
	occupied := make(map[string]string, len(state.Pieces))
	for _, p := range state.Pieces {
		occupied[p.Square] = p.Glyph
	}
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank))
		for file := 1; file <= 8; file++ {
			sq := fmt.Sprintf("%c%d", 'a'+file-1, rank)
			if g, ok := occupied[sq]; ok {
				sb.WriteString(g)
			} else {
				sb.WriteString(emptySquare)
			}
			if file < 8 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}

func (f *Formatter) Started(state *chessdto.GameState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(f.text("game.started", map[string]string{
		"White": state.White.Name,
		"Black": state.Black.Name,
	}))
	sb.WriteString("\n\n")
	sb.WriteString(f.Board(state))
	sb.WriteString("\n\n")
	sb.WriteString(f.turnLine(state))
	sb.WriteString(fmt.Sprintf("\n이동: `%s체스 이동 e2 e4`", f.Prefix()))
	return sb.String()
}

// Challenge invites target to accept a game against challenger.
func (f *Formatter) Challenge(challenger, target string) string {
	return f.text("game.challenge_open", map[string]string{
		"Challenger": challenger,
		"Target":     target,
		"Prefix":     f.Prefix(),
	})
}

// Move reports the committed move followed by either the next turn or the result.
func (f *Formatter) Move(state *chessdto.GameState) string {
	if state == nil || state.LastMove == nil {
		return ""
	}
	mv := state.LastMove
	// the turn has already passed to the other side
	mover := state.White.Name
	if state.Turn == "white" {
		mover = state.Black.Name
	}
	data := map[string]string{
		"Player":   mover,
		"From":     mv.From,
		"To":       mv.To,
		"Captured": mv.Captured,
	}
	var sb strings.Builder
	if mv.Captured != "" {
		sb.WriteString(f.text("move.captured", data))
	} else {
		sb.WriteString(f.text("move.done", data))
	}
	sb.WriteString("\n\n")
	sb.WriteString(f.Board(state))
	sb.WriteString("\n\n")
	if state.Finished() {
		sb.WriteString(f.outcome(state))
		sb.WriteByte('\n')
		sb.WriteString(f.scoreLine(state))
		return sb.String()
	}
	sb.WriteString(f.turnLine(state))
	return sb.String()
}

func (f *Formatter) Status(state *chessdto.GameState) string {
	if state == nil {
		return f.NoGame()
	}
	var sb strings.Builder
	sb.WriteString("♞ 체스 현황\n")
	sb.WriteString(fmt.Sprintf("• 백 %s / 흑 %s\n", state.White.Name, state.Black.Name))
	sb.WriteString(fmt.Sprintf("• 진행 %d수\n", state.MoveCount))
	if mv := state.LastMove; mv != nil {
		sb.WriteString(fmt.Sprintf("• 최근 %s %s→%s\n", mv.Piece, mv.From, mv.To))
	}
	sb.WriteByte('\n')
	sb.WriteString(f.Board(state))
	sb.WriteString("\n\n")
	if state.Finished() {
		sb.WriteString(f.outcome(state))
	} else {
		sb.WriteString(f.turnLine(state))
	}
	sb.WriteByte('\n')
	sb.WriteString(f.scoreLine(state))
	return sb.String()
}

func (f *Formatter) Score(state *chessdto.GameState) string {
	if state == nil {
		return f.NoGame()
	}
	return f.scoreLine(state)
}

func (f *Formatter) Resign(state *chessdto.GameState) string {
	if state == nil {
		return ""
	}
	return f.outcome(state) + "\n" + f.scoreLine(state)
}

func (f *Formatter) Help() string {
	p := f.Prefix()
	content := fmt.Sprintf(`%s
• %s체스 시작 @상대
  대국 신청 (요청자가 백)
• %s체스 수락
  나에게 온 대국 신청 수락
• %s체스 이동 <출발> <도착> (예: e2 e4)
  기물 이동, 상대 킹을 잡으면 승리
• %s체스 현황
  현재 보드와 차례 확인
• %s체스 점수
  양측 기물 점수 확인
• %s체스 기권
  즉시 기권하고 대국 종료
• %s체스 기록
  최근 종료된 대국 보기`, chessHelpInstruction, p, p, p, p, p, p, p)

	return util.SeeMore(chessHelpInstruction, content)
}

func (f *Formatter) Results(results []chessdto.ResultView) string {
	if len(results) == 0 {
		return "기록된 대국이 없습니다."
	}
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("• %s 백 %s vs 흑 %s: %s %s (%d수)\n",
			formatShortTime(r.EndedAt), r.White, r.Black,
			f.TeamLabel(r.Winner)+" 승", formatMethod(r.Method), r.MoveCount))
		sb.WriteString(fmt.Sprintf("  점수 %s / %s\n", formatScore(r.WhiteScore), formatScore(r.BlackScore)))
	}
	return util.SeeMore(chessResultsInstruction, strings.TrimRight(sb.String(), "\n"))
}

// Rejection explains why a command was refused. state may be nil.
func (f *Formatter) Rejection(err error, state *chessdto.GameState) string {
	if err == nil {
		return ""
	}
	key := MessageKey(err)
	if key == "" {
		return f.text("move.rejected.unknown", nil)
	}
	data := map[string]string{"Turn": "상대"}
	if errors.Is(err, chess.ErrWrongTurn) && state != nil {
		data["Turn"] = f.TeamLabel(state.Turn)
	}
	if errors.Is(err, game.ErrGameNotFound) {
		return f.NoGame()
	}
	return f.text(key, data)
}

func (f *Formatter) NoGame() string {
	return f.text("game.not_found", nil) + fmt.Sprintf(" `%s체스 시작 @상대`로 새 대국을 시작하세요.", f.Prefix())
}

func (f *Formatter) turnLine(state *chessdto.GameState) string {
	player := state.White.Name
	if state.Turn == "black" {
		player = state.Black.Name
	}
	return f.text("game.turn", map[string]string{
		"Turn":   f.TeamLabel(state.Turn),
		"Player": player,
	})
}

func (f *Formatter) scoreLine(state *chessdto.GameState) string {
	return f.text("game.score", map[string]string{
		"White": formatScore(state.Score.White),
		"Black": formatScore(state.Score.Black),
	})
}

func (f *Formatter) outcome(state *chessdto.GameState) string {
	winner, loser := state.White.Name, state.Black.Name
	if state.WinnerTeam == "black" {
		winner, loser = loser, winner
	}
	if state.Method == game.MethodResignation {
		return f.text("game.won_by_resign", map[string]string{"Winner": winner, "Loser": loser})
	}
	return f.text("game.won_by_capture", map[string]string{"Winner": winner})
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func formatMethod(method string) string {
	switch method {
	case game.MethodResignation:
		return "기권"
	case game.MethodKingCapture:
		return "킹 잡기"
	default:
		return method
	}
}

func formatShortTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(kst).Format("01/02 15:04")
}

var kst = time.FixedZone("KST", 9*60*60)
