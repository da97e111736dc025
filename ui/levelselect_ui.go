package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// maxLevelButtons caps the list so it fits the default window.
const maxLevelButtons = 10

// LevelSelectUI is the start screen: one button per level file plus the
// generated and endless modes.
type LevelSelectUI struct {
	UI *ebitenui.UI

	OnLevel    func(name string)
	OnDefault  func()
	OnRandom   func()
	OnEndless  func()
	OnContinue func()
	OnQuit     func()

	statusLabel *widget.Label

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewLevelSelectUI builds the screen. continueLabel is empty when there is
// no saved progress to resume.
func NewLevelSelectUI(levels []string, continueLabel string) (*LevelSelectUI, error) {
	ui := &LevelSelectUI{}
	if err := ui.loadFonts(); err != nil {
		return nil, err
	}
	ui.buildUI(levels, continueLabel)
	return ui, nil
}

func (ui *LevelSelectUI) loadFonts() error {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load UI font: %w", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 28}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 14}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 11}
	return nil
}

func (ui *LevelSelectUI) buildUI(levels []string, continueLabel string) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	content.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("FLIPSIDE", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	if continueLabel != "" {
		content.AddChild(ui.button("Continue: "+continueLabel, accentButton, invoke(&ui.OnContinue)))
	}
	content.AddChild(ui.button("Play Default Level", plainButton, invoke(&ui.OnDefault)))
	content.AddChild(ui.button("Play Random Level", plainButton, invoke(&ui.OnRandom)))
	content.AddChild(ui.button("Endless", plainButton, invoke(&ui.OnEndless)))

	if len(levels) > 0 {
		content.AddChild(widget.NewLabel(
			widget.LabelOpts.Text("Levels", &ui.normalFace, &widget.LabelColor{
				Idle: color.RGBA{200, 200, 200, 255},
			}),
		))
	}
	for i, name := range levels {
		if i == maxLevelButtons {
			content.AddChild(widget.NewLabel(
				widget.LabelOpts.Text(fmt.Sprintf("... and %d more (use flipside play <file>)", len(levels)-i), &ui.smallFace, &widget.LabelColor{
					Idle: color.RGBA{150, 150, 150, 255},
				}),
			))
			break
		}
		content.AddChild(ui.button(name, plainButton, func() {
			if ui.OnLevel != nil {
				ui.OnLevel(name)
			}
		}))
	}

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	content.AddChild(ui.statusLabel)
	content.AddChild(ui.button("Quit", quitButton, invoke(&ui.OnQuit)))

	rootContainer.AddChild(content)
	ui.UI = &ebitenui.UI{Container: rootContainer}
}

type buttonStyle struct {
	idle, hover, pressed color.RGBA
}

var (
	plainButton  = buttonStyle{color.RGBA{60, 60, 80, 255}, color.RGBA{80, 80, 110, 255}, color.RGBA{40, 40, 60, 255}}
	accentButton = buttonStyle{color.RGBA{40, 100, 40, 255}, color.RGBA{60, 140, 60, 255}, color.RGBA{30, 80, 30, 255}}
	quitButton   = buttonStyle{color.RGBA{100, 40, 40, 255}, color.RGBA{140, 60, 60, 255}, color.RGBA{80, 30, 30, 255}}
)

func (ui *LevelSelectUI) button(label string, style buttonStyle, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(240, 26)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(style.idle),
			Hover:   image.NewNineSliceColor(style.hover),
			Pressed: image.NewNineSliceColor(style.pressed),
		}),
		widget.ButtonOpts.Text(label, &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// invoke reads the callback at click time, so handlers may be set after
// the UI is built.
func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

// SetStatus shows an error or notice under the list.
func (ui *LevelSelectUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *LevelSelectUI) Update() {
	ui.UI.Update()
}
