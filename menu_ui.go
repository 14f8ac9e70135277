package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/battlebox/battle"
	"github.com/milk9111/battlebox/config"
)

type submenuKind int

const (
	submenuNone submenuKind = iota
	submenuAct
	submenuItem
)

// MenuUI is the FIGHT/ACT/ITEM/MERCY bar plus the act/item submenu. All
// button handlers go through the encounter's Select* methods, which
// consult the state machine gates, so a click outside the menu states is
// a no-op.
type MenuUI struct {
	ui      *ebitenui.UI
	enc     *battle.Encounter
	cfg     *config.Config
	submenu submenuKind
}

func NewMenuUI(enc *battle.Encounter, cfg *config.Config) *MenuUI {
	m := &MenuUI{enc: enc, cfg: cfg}
	m.rebuild()

	// the submenu closes whenever the machine leaves the menu states
	enc.Machine.AddListener(func(from, to battle.State) {
		if to != battle.StateSubmenuSelection && m.submenu != submenuNone {
			m.submenu = submenuNone
			m.rebuild()
		}
	})
	return m
}

func (m *MenuUI) Update() {
	if m.ui != nil {
		m.ui.Update()
	}
}

func (m *MenuUI) Draw(screen *ebiten.Image) {
	if m.ui != nil {
		m.ui.Draw(screen)
	}
}

// rebuild reconstructs the widget tree for the current submenu. Cheap
// enough to run on every submenu change.
func (m *MenuUI) rebuild() {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x2a, G: 0x22, B: 0x22, A: 0xff})
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(24),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	bar.AddChild(button("FIGHT", func() { m.enc.SelectFight() }))
	bar.AddChild(button("ACT", func() { m.openSubmenu(submenuAct) }))
	bar.AddChild(button("ITEM", func() { m.openSubmenu(submenuItem) }))
	bar.AddChild(button("MERCY", func() { m.enc.SelectMercy() }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	if m.submenu != submenuNone {
		panel := widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 200})),
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 20, Right: 20}),
			)),
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
					HorizontalPosition: widget.AnchorLayoutPositionCenter,
					VerticalPosition:   widget.AnchorLayoutPositionCenter,
				}),
			),
		)
		for _, b := range m.submenuButtons(button) {
			panel.AddChild(b)
		}
		root.AddChild(panel)
	}

	m.ui = &ebitenui.UI{Container: root}
}

func (m *MenuUI) submenuButtons(button func(string, func()) *widget.Button) []*widget.Button {
	var out []*widget.Button
	switch m.submenu {
	case submenuAct:
		for i, act := range m.enc.Enemy.Acts {
			i := i
			out = append(out, button(act.Name, func() { m.enc.SelectAct(i) }))
		}
	case submenuItem:
		if len(m.enc.Items) == 0 {
			out = append(out, button("(empty)", func() { m.enc.CancelSubmenu() }))
		}
		for i, item := range m.enc.Items {
			i := i
			out = append(out, button(fmt.Sprintf("%s (+%g HP)", item.Name, item.Heal), func() { m.enc.UseItem(i) }))
		}
	}
	return out
}

func (m *MenuUI) openSubmenu(kind submenuKind) {
	if !m.enc.Machine.CanSelectMenuOption() {
		return
	}
	m.enc.OpenSubmenu()
	if m.enc.Machine.State() != battle.StateSubmenuSelection {
		return
	}
	m.submenu = kind
	m.rebuild()
}
