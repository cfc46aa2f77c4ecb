package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/park285/cheese-chess-rules/internal/chess"
)

// Piece silhouettes on a 45x45 canvas. FILL and STROKE are substituted per team.
var pieceShapes = map[chess.Kind]string{
	chess.Pawn: `<circle cx="22.5" cy="13" r="5.5"/>
<path d="M15 36 L30 36 L27 24 Q22.5 19 18 24 Z"/>
<rect x="12" y="35" width="21" height="4"/>`,
	chess.Knight: `<path d="M12 38 L33 38 Q34 21 25 11 L21 7 L19.5 12 Q12 16 10.5 25 L14 27 L20 22 Q19 30 12 38 Z"/>
<circle cx="17" cy="17" r="1.2" fill="STROKE"/>`,
	chess.Bishop: `<circle cx="22.5" cy="8" r="2.5"/>
<ellipse cx="22.5" cy="21" rx="6.5" ry="10"/>
<path d="M20 21 L25 21 M22.5 18.5 L22.5 23.5" fill="none"/>
<rect x="12" y="32" width="21" height="6"/>`,
	chess.Rook: `<path d="M11 38 L34 38 L34 34 L31 34 L31 19 L34 19 L34 10 L30 10 L30 13 L26 13 L26 10 L19 10 L19 13 L15 13 L15 10 L11 10 L11 19 L14 19 L14 34 L11 34 Z"/>`,
	chess.Queen: `<path d="M10 34 L12 14 L17.5 26 L22.5 11 L27.5 26 L33 14 L35 34 Z"/>
<circle cx="12" cy="12" r="2"/><circle cx="22.5" cy="9" r="2"/><circle cx="33" cy="12" r="2"/>
<rect x="10" y="34" width="25" height="4"/>`,
	chess.King: `<path d="M21 4 L24 4 L24 7 L27 7 L27 10 L24 10 L24 14 L21 14 L21 10 L18 10 L18 7 L21 7 Z"/>
<path d="M11 33 Q8 22 16 19 Q22.5 16 29 19 Q37 22 34 33 Z"/>
<rect x="11" y="33" width="23" height="5"/>`,
}

var teamPaint = map[chess.Team][2]string{
	chess.White: {"#ffffff", "#1a1a1a"},
	chess.Black: {"#1c1c1c", "#e6e6e6"},
}

func pieceSVG(kind chess.Kind, team chess.Team) (string, error) {
	shape, ok := pieceShapes[kind]
	if !ok {
		return "", fmt.Errorf("no shape for piece kind %s", kind)
	}
	paint := teamPaint[team]
	body := strings.NewReplacer("FILL", paint[0], "STROKE", paint[1]).Replace(shape)
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">`+
			`<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">%s</g></svg>`,
		paint[0], paint[1], body), nil
}

type pieceCacheKey struct {
	kind chess.Kind
	team chess.Team
	size int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

func renderPieceImage(kind chess.Kind, team chess.Team, size int) (image.Image, error) {
	key := pieceCacheKey{kind: kind, team: team, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	src, err := pieceSVG(kind, team)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()

	return img, nil
}
