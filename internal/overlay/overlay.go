// Package overlay draws command feedback onto video frames: a stop sign or
// direction arrow for the active command, plus a status caption.
package overlay

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"gocv.io/x/gocv"
	"golang.org/x/image/font/basicfont"

	"github.com/ayusman/mudra/internal/action"
)

// DefaultSymbolSize is the indicator size in pixels.
const DefaultSymbolSize = 80.0

// Annotate draws the command indicator and caption onto frame in place.
func Annotate(frame *gocv.Mat, command, caption string) error {
	img, err := frame.ToImage()
	if err != nil {
		return fmt.Errorf("frame to image: %w", err)
	}

	dc := gg.NewContextForImage(img)
	cx := float64(dc.Width()) / 2
	cy := float64(dc.Height()) / 2
	drawSymbol(dc, command, cx, cy, DefaultSymbolSize)
	drawCaption(dc, caption)

	rgba, ok := dc.Image().(*image.RGBA)
	if !ok {
		return fmt.Errorf("unexpected overlay image type %T", dc.Image())
	}
	annotated, err := gocv.ImageToMatRGB(rgba)
	if err != nil {
		return fmt.Errorf("image to frame: %w", err)
	}
	defer annotated.Close()

	annotated.CopyTo(frame)
	return nil
}

// drawSymbol renders the indicator for a command centered on (cx, cy). The
// _VOICE suffix on movement commands does not change the visual. Unknown
// commands and sentinels draw nothing.
func drawSymbol(dc *gg.Context, command string, cx, cy, size float64) {
	switch strings.TrimSuffix(command, "_VOICE") {
	case action.Stop:
		drawStopSign(dc, cx, cy, size)
	case "GO_FORWARD":
		drawArrow(dc, cx, cy, size, 0)
	case "MOVE_BACKWARD":
		drawArrow(dc, cx, cy, size, 180)
	case "TURN_LEFT":
		drawArrow(dc, cx, cy, size, 270)
	case "TURN_RIGHT":
		drawArrow(dc, cx, cy, size, 90)
	}
}

// drawStopSign draws a red octagon with a white bar.
func drawStopSign(dc *gg.Context, cx, cy, size float64) {
	r := size / 2
	dc.NewSubPath()
	for i := 0; i < 8; i++ {
		a := gg.Radians(float64(i)*45 + 22.5)
		dc.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	dc.ClosePath()
	dc.SetRGBA(0.85, 0.1, 0.1, 0.9)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(cx-r*0.55, cy-r*0.12, r*1.1, r*0.24)
	dc.Fill()
}

// drawArrow draws a yellow arrow; angle is degrees clockwise from "up".
func drawArrow(dc *gg.Context, cx, cy, size, angle float64) {
	dc.Push()
	dc.RotateAbout(gg.Radians(angle), cx, cy)

	h := size / 2
	w := size * 0.18

	// Shaft
	dc.DrawRectangle(cx-w/2, cy-h*0.1, w, h*1.0)
	// Head
	dc.MoveTo(cx, cy-h)
	dc.LineTo(cx-h*0.45, cy-h*0.1)
	dc.LineTo(cx+h*0.45, cy-h*0.1)
	dc.ClosePath()

	dc.SetRGBA(0.95, 0.8, 0.1, 0.9)
	dc.Fill()
	dc.Pop()
}

// drawCaption prints status text in the top-left corner.
func drawCaption(dc *gg.Context, caption string) {
	if caption == "" {
		return
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.DrawString(caption, 11, 21)
	dc.SetRGB(0.2, 1, 0.2)
	dc.DrawString(caption, 10, 20)
}
