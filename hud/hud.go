// Package hud rasterizes the status overlay drawn over the viewports.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"bus-viewer/lighting"
	"bus-viewer/sim"
)

const (
	margin  = 8
	padding = 6
)

// Overlay stores the status lines for display and renders them into an RGBA
// image the size of the framebuffer.
type Overlay struct {
	lines []string

	Face       font.Face
	Foreground color.Color
	Background color.Color

	img *image.RGBA
}

func New() *Overlay {
	return &Overlay{
		Face:       basicfont.Face7x13,
		Foreground: color.RGBA{R: 240, G: 240, B: 240, A: 255},
		Background: color.RGBA{A: 150},
	}
}

func (o *Overlay) AddLine(format string, args ...interface{}) {
	o.lines = append(o.lines, fmt.Sprintf(format, args...))
}

func (o *Overlay) Clear() {
	o.lines = o.lines[:0]
}

func (o *Overlay) Lines() []string {
	return o.lines
}

func (o *Overlay) Text() string {
	if len(o.lines) == 0 {
		return ""
	}
	return strings.Join(o.lines, "\n") + "\n"
}

// Update replaces the lines with the current viewer status.
func (o *Overlay) Update(st *sim.State, fps float64) {
	o.Clear()
	o.AddLine("FPS %.0f  viewports %d", fps, st.Viewports)
	o.AddLine("camera %s  pos (%.1f, %.1f, %.1f)", st.Camera.Mode(),
		st.Camera.Position.X, st.Camera.Position.Y, st.Camera.Position.Z)
	o.AddLine("bus (%.1f, %.1f) heading %.0f", st.Pose.Position.X, st.Pose.Position.Z, st.Pose.Yaw)
	o.AddLine("door %.0f  fan %s", st.Door.Angle, onOff(st.Fan.On))

	var lights []string
	for f := lighting.FlagDirectional; f <= lighting.FlagSpecular; f++ {
		lights = append(lights, fmt.Sprintf("%s:%s", f, onOff(st.Lights.Toggles.Get(f))))
	}
	o.AddLine("%s", strings.Join(lights[:3], " "))
	o.AddLine("%s", strings.Join(lights[3:], " "))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Render draws the lines in the top-left corner of a transparent
// width×height image. The image is reused while the size is unchanged.
func (o *Overlay) Render(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	if o.img == nil || o.img.Rect.Dx() != width || o.img.Rect.Dy() != height {
		o.img = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		draw.Draw(o.img, o.img.Rect, image.Transparent, image.Point{}, draw.Src)
	}
	if len(o.lines) == 0 {
		return o.img
	}

	metrics := o.Face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	d := &font.Drawer{
		Dst:  o.img,
		Src:  image.NewUniform(o.Foreground),
		Face: o.Face,
	}

	widest := 0
	for _, line := range o.lines {
		if w := d.MeasureString(line).Ceil(); w > widest {
			widest = w
		}
	}
	panel := image.Rect(margin, margin,
		margin+widest+2*padding, margin+len(o.lines)*lineHeight+2*padding)
	draw.Draw(o.img, panel, image.NewUniform(o.Background), image.Point{}, draw.Over)

	for i, line := range o.lines {
		d.Dot = fixed.P(margin+padding, margin+padding+ascent+i*lineHeight)
		d.DrawString(line)
	}
	return o.img
}
