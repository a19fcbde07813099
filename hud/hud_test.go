package hud

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-viewer/input"
	"bus-viewer/sim"
)

func TestLines(t *testing.T) {
	o := New()
	assert.Equal(t, "", o.Text())

	o.AddLine("a %d", 1)
	o.AddLine("b")
	assert.Equal(t, "a 1\nb\n", o.Text())
	assert.Equal(t, []string{"a 1", "b"}, o.Lines())

	o.Clear()
	assert.Empty(t, o.Lines())
}

func TestUpdateReflectsState(t *testing.T) {
	st := sim.New(sim.DefaultSettings(), zerolog.Nop())
	st.Step(0.01, input.Frame{}.Press(input.ToggleOrbit, input.ToggleSpot, input.ToggleFan))

	o := New()
	o.Update(st, 60)
	text := o.Text()

	assert.Contains(t, text, "FPS 60")
	assert.Contains(t, text, "camera orbit")
	assert.Contains(t, text, "fan on")
	assert.Contains(t, text, "spot:off")
	assert.Contains(t, text, "directional:on")

	o.Update(st, 30)
	assert.Equal(t, 1, strings.Count(o.Text(), "FPS"), "update replaces the previous lines")
}

func TestRenderDrawsTopLeftPanel(t *testing.T) {
	o := New()
	o.AddLine("status")

	img := o.Render(200, 100)
	require.NotNil(t, img)
	assert.Equal(t, 200, img.Rect.Dx())
	assert.Equal(t, 100, img.Rect.Dy())

	_, _, _, a := img.At(margin+1, margin+1).RGBA()
	assert.NotZero(t, a, "panel is drawn behind the text")

	_, _, _, a = img.At(199, 99).RGBA()
	assert.Zero(t, a, "the rest of the overlay is transparent")
}

func TestRenderEmptyIsTransparent(t *testing.T) {
	o := New()
	o.AddLine("x")
	o.Render(64, 64)
	o.Clear()

	img := o.Render(64, 64)
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatalf("expected a cleared image")
		}
	}
}

func TestRenderReusesImage(t *testing.T) {
	o := New()
	first := o.Render(32, 32)
	assert.Same(t, first, o.Render(32, 32))
	assert.NotSame(t, first, o.Render(64, 32))
	assert.Nil(t, o.Render(0, 10))
}
