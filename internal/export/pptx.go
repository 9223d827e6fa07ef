package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/logger"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// Creator is written into the document properties.
const Creator = "slidesmith"

// borderWidth is a 0.75pt card outline in EMU.
const borderWidth = 9525

// ImageSource resolves image references to bytes and a MIME type.
type ImageSource interface {
	Load(ctx context.Context, ref string) ([]byte, string, error)
}

// Writer packages instructions into a .pptx file with GoPPT. Images that
// cannot be loaded are skipped with a warning; background images fall back
// to their solid base color.
type Writer struct {
	Images ImageSource
	Log    *logger.Logger
}

// Write encodes slides as a presentation titled title.
func (w Writer) Write(ctx context.Context, out io.Writer, title string, slides []SlideInstructions) error {
	p := ppt.New()
	p.GetDocumentProperties().Title = title
	p.GetDocumentProperties().Creator = Creator
	p.GetLayout().SetCustomLayout(ppt.Inch(layout.CanvasWidth), ppt.Inch(layout.CanvasHeight))

	for i, si := range slides {
		if err := ctx.Err(); err != nil {
			return slideerrors.NewExportError(i, err)
		}

		slide := p.GetActiveSlide()
		if i > 0 {
			slide = p.CreateSlide()
		}
		w.drawSlide(ctx, slide, si)
	}

	if err := p.WriteTo(out); err != nil {
		return slideerrors.NewExportError(-1, fmt.Errorf("write presentation: %w", err))
	}
	return nil
}

func (w Writer) drawSlide(ctx context.Context, slide *ppt.Slide, si SlideInstructions) {
	log := w.Log.WithFields(map[string]any{"slide": si.Index + 1, "template": string(si.Template)})

	w.drawBackground(ctx, slide, si.Background, log)

	if si.Overlay != nil {
		scrim := slide.CreateRichTextShape()
		scrim.SetPosition(0, 0)
		scrim.SetSize(ppt.Inch(layout.CanvasWidth), ppt.Inch(layout.CanvasHeight))
		scrim.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(withAlpha(si.Overlay.Color, si.Overlay.Opacity))))
	}

	for _, s := range si.Shapes {
		auto := slide.CreateAutoShape()
		auto.SetAutoShapeType(autoShapeType(s.Kind))
		auto.SetName(s.Name)
		auto.SetPosition(ppt.Inch(s.X), ppt.Inch(s.Y))
		auto.SetSize(ppt.Inch(s.W), ppt.Inch(s.H))
		auto.GetFill().SetSolid(ppt.NewColor(s.Color))
		if s.Border != "" {
			b := auto.GetBorder()
			b.Style = ppt.BorderSolid
			b.Width = borderWidth
			b.Color = ppt.NewColor(s.Border)
		}
	}

	for _, t := range si.Texts {
		drawText(slide, t)
	}

	for _, img := range si.Images {
		data, mime, err := w.load(ctx, img.Ref)
		if err != nil {
			log.Error(err, "skipping image")
			continue
		}
		x, y, width, height := img.X, img.Y, img.W, img.H
		if img.Fit == FitContain {
			x, y, width, height = contain(data, x, y, width, height)
		}
		pic := slide.CreateDrawingShape()
		pic.SetImageData(data, mime)
		pic.SetName(img.Name)
		pic.SetPosition(ppt.Inch(x), ppt.Inch(y))
		pic.SetSize(ppt.Inch(width), ppt.Inch(height))
	}
}

func (w Writer) drawBackground(ctx context.Context, slide *ppt.Slide, bg Background, log *logger.Logger) {
	switch bg.Kind {
	case theme.PaintSolid:
		slide.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(bg.Color)))
	case theme.PaintGradient:
		if len(bg.Stops) < 2 {
			slide.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(bg.Fallback)))
			return
		}
		// GoPPT gradients take two stops: run from the edge to the midpoint
		slide.SetBackground(ppt.NewFill().SetGradientLinear(
			ppt.NewColor(bg.Stops[0]), ppt.NewColor(bg.Stops[len(bg.Stops)/2]), bg.Angle))
	case theme.PaintImage:
		slide.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(bg.Fallback)))
		data, mime, err := w.load(ctx, bg.ImageRef)
		if err != nil {
			log.Error(err, "background image unavailable, using solid fill")
			return
		}
		pic := slide.CreateDrawingShape()
		pic.SetImageData(data, mime)
		pic.SetName("background")
		pic.SetPosition(0, 0)
		pic.SetSize(ppt.Inch(layout.CanvasWidth), ppt.Inch(layout.CanvasHeight))
	}
}

func (w Writer) load(ctx context.Context, ref string) ([]byte, string, error) {
	if w.Images == nil {
		return nil, "", fmt.Errorf("no image source configured")
	}
	return w.Images.Load(ctx, ref)
}

func drawText(slide *ppt.Slide, t TextBox) {
	rt := slide.CreateRichTextShape()
	if t.Field != "" {
		rt.SetName(t.Field)
	}
	rt.SetPosition(ppt.Inch(t.X), ppt.Inch(t.Y))
	rt.SetSize(ppt.Inch(t.W), ppt.Inch(t.H))
	rt.SetWordWrap(true)
	rt.SetTextAnchor(ppt.TextAnchorTop)

	run := rt.CreateTextRun(t.Text)
	run.GetFont().SetSize(t.FontSize).SetBold(t.Bold).SetColor(ppt.NewColor(t.Color)).SetName(t.Font)

	h := ppt.HorizontalLeft
	if t.Align == layout.AlignCenter {
		h = ppt.HorizontalCenter
	}
	rt.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(h))
}

func autoShapeType(k ShapeKind) ppt.AutoShapeType {
	switch k {
	case ShapeRoundRect:
		return ppt.AutoShapeRoundedRect
	case ShapeEllipse:
		return ppt.AutoShapeEllipse
	default:
		return ppt.AutoShapeRectangle
	}
}

// withAlpha turns "#rrggbb" and an opacity into GoPPT's "AARRGGBB".
func withAlpha(hex string, opacity float64) string {
	a := int(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return fmt.Sprintf("%02X%s", a, strings.ToUpper(strings.TrimPrefix(hex, "#")))
}

// contain shrinks the box to the image's aspect ratio, centered. Images whose
// size cannot be read keep the full box.
func contain(data []byte, x, y, w, h float64) (float64, float64, float64, float64) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return x, y, w, h
	}
	ratio := float64(cfg.Width) / float64(cfg.Height)
	if w/h > ratio {
		nw := h * ratio
		return x + (w-nw)/2, y, nw, h
	}
	nh := w / ratio
	return x, y + (h-nh)/2, w, nh
}
