// Package render draws a board snapshot as a PNG for chat clients.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/park285/cheese-chess-rules/internal/chess"
)

// Highlight marks the last move on the board.
type Highlight struct {
	From chess.Position
	To   chess.Position
}

type Options struct {
	Highlight  *Highlight
	Header     string
	Turn       string
	WhiteScore float64
	BlackScore float64
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, board *chess.Board, opts Options) ([]byte, error)
}

var ErrNilBoard = errors.New("board is nil")

const (
	squareSize           = 72
	boardSize            = squareSize * 8
	sideMargin           = 36
	topMargin            = 110
	bottomMargin         = 36
	titleHeight          = 40
	secondaryPanelHeight = 32
	gapBetweenPanels     = 14
	gapToBoard           = 22
	panelRadius          = 12
	panelPaddingX        = 20
	titleMinWidth        = 240
	scoreMinWidth        = 120
	turnMinWidth         = 140
	shadowOffsetY        = 6
)

var (
	lightSquare             = color.RGBA{233, 207, 163, 255}
	darkSquare              = color.RGBA{187, 136, 96, 255}
	whiteMoveHighlightFill  = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	blackMoveHighlightArrow = color.NRGBA{R: 148, G: 207, B: 255, A: 170}
	backgroundColor         = color.RGBA{18, 20, 30, 255}
	hudPanelColor           = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	hudTurnPanelColor       = color.NRGBA{R: 32, G: 35, B: 52, A: 245}
	hudShadowColor          = color.NRGBA{0, 0, 0, 50}
	hudTextPrimary          = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	hudTurnTextColor        = color.NRGBA{R: 204, G: 210, B: 236, A: 255}
	coordinateTextColor     = color.NRGBA{R: 8, G: 214, B: 120, A: 255}
)

type svgBoardRenderer struct {
	face font.Face
}

// NewSVGBoardRenderer rasterizes vector piece shapes onto a wooden board.
func NewSVGBoardRenderer() BoardRenderer {
	return &svgBoardRenderer{face: basicfont.Face7x13}
}

func (r *svgBoardRenderer) RenderPNG(ctx context.Context, board *chess.Board, opts Options) ([]byte, error) {
	if board == nil {
		return nil, ErrNilBoard
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	origin := image.Point{X: sideMargin, Y: topMargin}
	boardRect := image.Rect(origin.X, origin.Y, origin.X+boardSize, origin.Y+boardSize)
	img := image.NewRGBA(image.Rect(0, 0, boardSize+sideMargin*2, boardSize+topMargin+bottomMargin))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	r.drawHUD(img, opts, boardRect)
	drawSquares(img, origin)
	drawHighlight(img, board, opts.Highlight, origin)
	if err := drawPieces(img, board, origin); err != nil {
		return nil, err
	}
	r.drawCoordinates(img, origin)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSquares(dst imagedraw.Image, origin image.Point) {
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			pos, _ := chess.NewPosition(file, rank)
			imagedraw.Draw(dst, squareRect(pos, origin), image.NewUniform(squareColor(pos)), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, board *chess.Board, origin image.Point) error {
	for _, p := range board.AlivePieces() {
		img, err := renderPieceImage(p.Kind(), p.Team(), squareSize)
		if err != nil {
			return err
		}
		imagedraw.Draw(dst, squareRect(p.Position(), origin), img, image.Point{}, imagedraw.Over)
	}
	return nil
}

// White moves get filled squares, black moves an arrow.
func drawHighlight(img *image.RGBA, board *chess.Board, h *Highlight, origin image.Point) {
	if h == nil || !h.From.Valid() || !h.To.Valid() {
		return
	}
	mover, ok := board.PieceAt(h.To)
	if ok && mover.Team() == chess.Black {
		drawArrow(img, h.From, h.To, origin, blackMoveHighlightArrow)
		return
	}
	drawSquareOverlay(img, h.From, origin, whiteMoveHighlightFill)
	drawSquareOverlay(img, h.To, origin, whiteMoveHighlightFill)
}

func (r *svgBoardRenderer) drawHUD(img *image.RGBA, opts Options, boardRect image.Rectangle) {
	drawer := &font.Drawer{Dst: img, Face: r.face}

	title := strings.TrimSpace(opts.Header)
	if title == "" {
		title = "Chess"
	}
	turnText := strings.TrimSpace(opts.Turn)
	if turnText == "" {
		turnText = "Turn"
	}
	scoreText := formatScore(opts.WhiteScore) + " : " + formatScore(opts.BlackScore)

	turnBottom := boardRect.Min.Y - gapToBoard
	turnTop := turnBottom - secondaryPanelHeight
	titleBottom := turnTop - gapBetweenPanels
	titleTop := titleBottom - titleHeight

	width := func(text string, floor int) int {
		w := drawer.MeasureString(text).Round() + panelPaddingX*2
		if w < floor {
			return floor
		}
		return w
	}
	scoreWidth := width(scoreText, scoreMinWidth)
	titleWidth := width(title, titleMinWidth)
	if limit := boardRect.Dx() - scoreWidth - 24; titleWidth > limit {
		titleWidth = limit
	}
	turnWidth := width(turnText, turnMinWidth)
	if limit := boardRect.Dx() - 40; turnWidth > limit {
		turnWidth = limit
	}

	titleRect := image.Rect(boardRect.Min.X, titleTop, boardRect.Min.X+titleWidth, titleBottom)
	scoreRect := image.Rect(boardRect.Max.X-scoreWidth, titleTop, boardRect.Max.X, titleBottom)
	turnLeft := boardRect.Min.X + (boardRect.Dx()-turnWidth)/2
	turnRect := image.Rect(turnLeft, turnTop, turnLeft+turnWidth, turnBottom)

	for _, rect := range []image.Rectangle{titleRect, scoreRect, turnRect} {
		drawRoundedPanel(img, rect.Add(image.Pt(0, shadowOffsetY)), panelRadius, hudShadowColor)
	}
	drawRoundedPanel(img, titleRect, panelRadius, hudPanelColor)
	drawRoundedPanel(img, scoreRect, panelRadius, hudPanelColor)
	drawRoundedPanel(img, turnRect, panelRadius, hudTurnPanelColor)

	title = truncateWithEllipsis(r.face, title, titleRect.Dx()-panelPaddingX*2)
	turnText = truncateWithEllipsis(r.face, turnText, turnRect.Dx()-panelPaddingX*2)
	drawCenteredString(drawer, titleRect, title, hudTextPrimary)
	drawCenteredString(drawer, scoreRect, scoreText, hudTextPrimary)
	drawCenteredString(drawer, turnRect, turnText, hudTurnTextColor)
}

func (r *svgBoardRenderer) drawCoordinates(dst imagedraw.Image, origin image.Point) {
	drawer := &font.Drawer{Dst: dst, Face: r.face, Src: image.NewUniform(coordinateTextColor)}
	ascent := r.face.Metrics().Ascent.Ceil()
	boardEndY := origin.Y + boardSize
	for i := 0; i < 8; i++ {
		rankCenter := origin.Y + i*squareSize + squareSize/2
		drawCenteredText(drawer, strconv.Itoa(8-i), origin.X-sideMargin/2, rankCenter+ascent/2)
		fileCenter := origin.X + i*squareSize + squareSize/2
		drawCenteredText(drawer, string(rune('a'+i)), fileCenter, boardEndY+ascent+6)
	}
}

func squareRect(pos chess.Position, origin image.Point) image.Rectangle {
	col := pos.File() - 1
	row := 8 - pos.Rank()
	x := origin.X + col*squareSize
	y := origin.Y + row*squareSize
	return image.Rect(x, y, x+squareSize, y+squareSize)
}

func squareColor(pos chess.Position) color.Color {
	if (pos.File()+pos.Rank())%2 == 0 {
		return darkSquare
	}
	return lightSquare
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
