// Package render draws credential images. A single layout algorithm
// produces every template; the per-template look lives in Theme values.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"minet/internal/credential"
)

// Canvas dimensions, an A4 sheet at print resolution.
const (
	Width  = 1588
	Height = 2246

	leftWidth  = 305.0
	rightStart = leftWidth
	rightWidth = Width - rightStart
)

// Renderer draws credential images onto fresh canvases. Font faces are
// shared and not safe for concurrent drawing, so Render serializes.
type Renderer struct {
	fonts *fontCache
	mu    sync.Mutex
}

// New builds a renderer with the embedded typefaces parsed and ready.
func New() (*Renderer, error) {
	fonts, err := newFontCache()
	if err != nil {
		return nil, err
	}
	return &Renderer{fonts: fonts}, nil
}

// Render draws the credential using the theme for data.Template, falling
// back to the default theme for unknown names. photo may be nil, in which
// case an initials badge is drawn in its place.
func (r *Renderer) Render(data credential.Data, photo image.Image) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()

	theme := ThemeFor(data.Template)
	dc := gg.NewContext(Width, Height)

	r.drawBackground(dc, theme)
	r.drawSidebar(dc, theme, data, photo)
	r.drawHeader(dc, theme, data)
	r.drawSections(dc, theme, data)
	r.drawFooter(dc, theme)

	return dc.Image()
}

func (r *Renderer) setFont(dc *gg.Context, bold bool, size float64) {
	dc.SetFontFace(r.fonts.face(bold, size))
}

func (r *Renderer) measure(dc *gg.Context) MeasureFunc {
	return func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
}

func (r *Renderer) drawBackground(dc *gg.Context, t Theme) {
	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, mustHex(t.BGTop))
	grad.AddColorStop(1, mustHex(t.BGBottom))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	if t.SideFlat != "" {
		dc.SetHexColor(t.SideFlat)
	} else {
		side := gg.NewLinearGradient(0, 0, leftWidth, Height)
		side.AddColorStop(0, mustHex(t.SideStops[0]))
		side.AddColorStop(0.5, mustHex(t.SideStops[1]))
		side.AddColorStop(1, mustHex(t.SideStops[2]))
		dc.SetFillStyle(side)
	}
	dc.DrawRectangle(0, 0, leftWidth, Height)
	dc.Fill()

	if t.SideDivider != "" {
		dc.SetHexColor(t.SideDivider)
		dc.SetLineWidth(t.SideDividerW)
		dc.DrawLine(leftWidth, 0, leftWidth, Height)
		dc.Stroke()
	}
	if t.AccentStripe != "" {
		dc.SetHexColor(t.AccentStripe)
		dc.DrawRectangle(leftWidth-3, 0, 3, Height)
		dc.Fill()
	}
}

func (r *Renderer) drawSidebar(dc *gg.Context, t Theme, data credential.Data, photo image.Image) {
	cx := leftWidth / 2

	if photo != nil {
		dc.SetHexColor(t.RingColor)
		dc.SetLineWidth(t.RingWidth)
		dc.DrawCircle(cx, t.PhotoY, t.PhotoR)
		dc.Stroke()

		inner := t.PhotoR - 2
		dc.Push()
		dc.DrawCircle(cx, t.PhotoY, inner)
		dc.Clip()
		scaled := scaleSquare(photo, int(inner*2))
		dc.DrawImage(scaled, int(cx-inner), int(t.PhotoY-inner))
		dc.Pop()
	} else {
		dc.SetHexColor(t.BadgeFill)
		dc.DrawCircle(cx, t.PhotoY, t.PhotoR)
		dc.Fill()

		r.setFont(dc, true, t.InitialsSize)
		dc.SetHexColor(t.InitialsColor)
		dc.DrawStringAnchored(data.Initials(), cx, t.InitialsY, 0.5, 0)
	}

	y := t.SkillsY
	r.setFont(dc, true, t.SkillsHeadingSize)
	dc.SetHexColor(t.SkillsHeadingColor)
	dc.DrawStringAnchored(t.SkillsHeading, cx, y, 0.5, 0)
	y += 26

	r.setFont(dc, false, t.SkillSize)
	dc.SetHexColor(t.SkillColor)
	skills := data.Skills
	if len(skills) > 6 {
		skills = skills[:6]
	}
	skillGuard := Height - t.SkillGuard
	for _, skill := range skills {
		for _, line := range Wrap(r.measure(dc), skill, leftWidth-30) {
			if y < skillGuard {
				dc.DrawStringAnchored(line, cx, y, 0.5, 0)
				y += 20
			}
		}
	}

	y += 18
	r.setFont(dc, true, t.ContactHeadingSize)
	dc.SetHexColor(t.SkillsHeadingColor)
	dc.DrawStringAnchored("CONTACT", cx, y, 0.5, 0)
	y += 26

	r.setFont(dc, false, t.ContactSize)
	dc.SetHexColor(t.ContactColor)

	switch t.ContactStyle {
	case ContactCentered:
		guard := Height - t.ContactGuard
		drawWrapped := func(text string) {
			for _, line := range Wrap(r.measure(dc), text, leftWidth-25) {
				if y < guard {
					dc.DrawStringAnchored(line, cx, y, 0.5, 0)
					y += t.ContactStep
				}
			}
		}
		if data.Email != "" {
			drawWrapped(data.Email)
		}
		if data.Phone != "" && y < guard {
			dc.DrawStringAnchored(data.Phone, cx, y, 0.5, 0)
			y += t.ContactStep
		}
		if data.Location != "" {
			drawWrapped(data.Location)
		}

	case ContactIcons:
		if data.Email != "" {
			dc.DrawString("✉ "+localPart(data.Email), 20, y)
			y += t.ContactStep
		}
		if data.Phone != "" {
			dc.DrawString("☎ "+lastChars(data.Phone, 7), 20, y)
			y += t.ContactStep
		}
		if data.Location != "" {
			dc.DrawString("\U0001f4cd "+data.Location, 20, y)
			y += t.ContactStep
		}

	case ContactPlain:
		if data.Email != "" {
			dc.DrawString(localPart(data.Email), 15, y)
			y += t.ContactStep
		}
		if data.Phone != "" {
			dc.DrawString(lastChars(data.Phone, 7), 15, y)
			y += t.ContactStep
		}
		if data.Location != "" {
			dc.DrawString(data.Location, 15, y)
			y += t.ContactStep
		}
	}
}

func (r *Renderer) drawHeader(dc *gg.Context, t Theme, data credential.Data) {
	x := rightStart + 30.0

	r.setFont(dc, true, 50)
	dc.SetHexColor(t.NameColor)
	dc.DrawString(data.FullName, x, t.HeaderTop+50)

	r.setFont(dc, false, 32)
	dc.SetHexColor(t.ProfessionColor)
	dc.DrawString(data.Profession, x, t.HeaderTop+100)

	dc.SetHexColor(t.DividerColor)
	dc.SetLineWidth(t.DividerW)
	dc.DrawLine(x, t.HeaderTop+120, rightStart+rightWidth-30, t.HeaderTop+120)
	dc.Stroke()
}

func (r *Renderer) drawSections(dc *gg.Context, t Theme, data credential.Data) {
	y := 150.0
	x := rightStart + 30.0

	if s := strings.TrimSpace(data.Summary); s != "" {
		y = r.sectionHeading(dc, t, t.SummaryHeading, y)

		r.setFont(dc, false, 13)
		dc.SetHexColor(t.BodyColor)
		lines := Wrap(r.measure(dc), s, rightWidth-80)
		if len(lines) > 5 {
			lines = lines[:5]
		}
		for _, line := range lines {
			if y < Height-200 {
				dc.DrawString(line, x, y)
				y += 18
			}
		}
		y += 15
	}

	if s := strings.TrimSpace(data.Experience); s != "" {
		y = r.sectionHeading(dc, t, t.ExperienceHeading, y)
		y = r.indentedBlock(dc, t, s, y, t.ExpLineCap, 150)
		y += t.SectionGap
	}

	if s := strings.TrimSpace(data.Education); s != "" {
		y = r.sectionHeading(dc, t, "EDUCATION", y)
		y = r.indentedBlock(dc, t, s, y, 12, 120)
		y += t.SectionGap
	}

	if s := strings.TrimSpace(data.References); s != "" {
		y = r.sectionHeading(dc, t, "REFERENCES", y)

		r.setFont(dc, false, 12)
		dc.SetHexColor(t.BodyColor)
		count := 0
		for _, line := range Wrap(r.measure(dc), s, rightWidth-80) {
			if y >= Height-80 || count >= 10 {
				break
			}
			dc.DrawString(line, x, y)
			y += 17
			count++
		}
	}
}

func (r *Renderer) sectionHeading(dc *gg.Context, t Theme, text string, y float64) float64 {
	r.setFont(dc, true, 17)
	dc.SetHexColor(t.HeadingColor)
	dc.DrawString(text, rightStart+30, y)
	return y + 32
}

// indentedBlock lays out a wrapped text run, painting the theme's
// highlight box behind it first when one is configured.
func (r *Renderer) indentedBlock(dc *gg.Context, t Theme, text string, y float64, lineCap int, guard float64) float64 {
	r.setFont(dc, false, 12)
	lines := Wrap(r.measure(dc), text, rightWidth-90)

	limit := Height - guard
	count := 0
	probe := y
	for range lines {
		if count >= lineCap || probe >= limit {
			break
		}
		count++
		probe += 17
	}

	if t.BoxFill != nil {
		h := float64(count)*17 + 25
		dc.SetColor(t.BoxFill)
		dc.DrawRoundedRectangle(rightStart+30, y-18, rightWidth-60, h, 8)
		dc.Fill()
		if t.BoxStroke != "" {
			dc.SetHexColor(t.BoxStroke)
			dc.SetLineWidth(t.BoxStrokeW)
			dc.DrawRoundedRectangle(rightStart+30, y-18, rightWidth-60, h, 8)
			dc.Stroke()
		}
	}

	dc.SetHexColor(t.BodyColor)
	for i := 0; i < count; i++ {
		dc.DrawString(lines[i], rightStart+40, y)
		y += 17
	}
	return y
}

func (r *Renderer) drawFooter(dc *gg.Context, t Theme) {
	dc.SetHexColor(t.FooterFill)
	dc.DrawRectangle(0, Height-50, Width, 50)
	dc.Fill()

	r.setFont(dc, true, 13)
	dc.SetHexColor(t.TaglineColor)
	dc.DrawStringAnchored("✓ Verified by OnchainCreds", Width/2.0, Height-18, 0.5, 0)
}

// scaleSquare resamples src into a side x side square.
func scaleSquare(src image.Image, side int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

func lastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func mustHex(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
