/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8vm

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strconv"

	"chip8vm/byteconv"
	"chip8vm/chip8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

var keyMap = map[fyne.KeyName]uint8{
	fyne.Key1: 0x1, fyne.Key2: 0x2, fyne.Key3: 0x3, fyne.Key4: 0xC,
	fyne.KeyQ: 0x4, fyne.KeyW: 0x5, fyne.KeyE: 0x6, fyne.KeyR: 0xD,
	fyne.KeyA: 0x7, fyne.KeyS: 0x8, fyne.KeyD: 0x9, fyne.KeyF: 0xE,
	fyne.KeyZ: 0xA, fyne.KeyX: 0x0, fyne.KeyC: 0xB, fyne.KeyV: 0xF,
}

func (e *Emulator) onKeyDown(k *fyne.KeyEvent) {
	if hex, ok := keyMap[k.Name]; ok {
		e.keypad.Set(hex, true)
	}
}

func (e *Emulator) onKeyUp(k *fyne.KeyEvent) {
	if k.Name == fyne.KeyP {
		e.TogglePause()
		return
	}

	if k.Name == fyne.KeyN {
		e.StepOnce()
		return
	}

	if hex, ok := keyMap[k.Name]; ok {
		e.keypad.Set(hex, false)
	}
}

type Console struct {
	capacity  int
	container *fyne.Container
}

func NewConsole(capacity int) *Console {
	labels := make([]fyne.CanvasObject, capacity)
	for i := range capacity {
		labels[i] = widget.NewLabel("")
	}
	return &Console{
		capacity:  capacity,
		container: container.NewVBox(labels...),
	}
}

func (o *Console) Prepend(msg string) {
	newEntry := widget.NewLabelWithStyle(msg, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	o.container.Objects = append([]fyne.CanvasObject{newEntry}, o.container.Objects[:o.capacity-1]...)
}

func (o *Console) Refresh() {
	o.container.Refresh()
}

func (o *Console) Object() fyne.CanvasObject {
	return o.container
}

func registerLine(i uint8, value byte) string {
	return "V" + byteconv.U8toh(i, 1) + ": " + byteconv.U8toh(value, 2)
}

// window is the fyne host: the scaled framebuffer plus a debug panel with
// recent instructions, registers, PC, I and stack depth.
type window struct {
	machine *chip8.Machine

	image *canvas.Image

	opcodeData   *Console
	recent       []string
	registerData []string
	registers    binding.StringList
	registerList *widget.List

	programCounter *widget.Label
	index          *widget.Label
	stackDepth     *widget.Label
	status         *widget.Label
}

func (w *window) stepped(pc uint16, op chip8.Opcode) {
	if len(w.recent) == w.opcodeData.capacity {
		w.recent = w.recent[1:]
	}
	w.recent = append(w.recent, byteconv.U16toh(pc, 3)+" "+op.String())
}

// frameImage paints a display snapshot into a new image, leaving the one on
// screen untouched until the UI thread swaps it in.
func frameImage(display []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	for i, val := range display {
		x, y := i%chip8.Width, i/chip8.Width
		c := color.Black
		if val == 1 {
			c = color.White
		}
		img.Set(x, y, c)
	}
	return img
}

func (w *window) frame(display []byte, redraw bool) {
	var img *image.RGBA
	if redraw {
		img = frameImage(display)
	}

	recent := w.recent
	w.recent = nil

	var regs [chip8.RegisterCount]string
	for i := range uint8(chip8.RegisterCount) {
		regs[i] = registerLine(i, w.machine.Register(i))
	}

	pc := w.machine.ProgramCounter()
	i := w.machine.Index()
	sd := w.machine.StackDepth()
	state := w.machine.State()

	fyne.Do(func() {
		if img != nil {
			w.image.Image = img
			w.image.Refresh()
		}

		if len(recent) > 0 {
			for _, line := range recent {
				w.opcodeData.Prepend(line)
			}
			w.opcodeData.Refresh()
		}

		copy(w.registerData, regs[:])
		_ = w.registers.Reload()

		w.programCounter.SetText("PC: " + byteconv.U16toh(pc, 3))
		w.index.SetText("I: " + byteconv.U16toh(i, 3))
		w.stackDepth.SetText("Stack: " + strconv.Itoa(sd))
		w.status.SetText(state.String())
	})
}

// Run opens the emulator window and runs the loaded program until the window
// is closed or ctx is done. A machine fault is shown in the window and
// returned once the window closes.
func (e *Emulator) Run(ctx context.Context) error {
	a := app.New()
	win := a.NewWindow("CHIP-8 Emulator")

	canv, ok := win.Canvas().(desktop.Canvas) // Extension that exposes OnKeyUp event
	if !ok {
		return errors.New("emulator cannot be run on mobile")
	}
	canv.SetOnKeyDown(e.onKeyDown)
	canv.SetOnKeyUp(e.onKeyUp)

	w := &window{
		machine:      e.machine,
		opcodeData:   NewConsole(9),
		registerData: make([]string, chip8.RegisterCount),
	}

	w.image = canvas.NewImageFromImage(frameImage(make([]byte, chip8.Area)))
	w.image.FillMode = canvas.ImageFillStretch  // Scales the grid to window size
	w.image.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	scale := float32(e.opts.Scale)
	imageContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale)),
		w.image,
	)

	opcodeContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(150, float32(chip8.Height)*scale)),
		w.opcodeData.Object(),
	)

	for i := range uint8(chip8.RegisterCount) {
		w.registerData[i] = registerLine(i, 0)
	}
	w.registers = binding.BindStringList(&w.registerData)

	w.registerList = widget.NewListWithData(
		w.registers,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(di binding.DataItem, obj fyne.CanvasObject) {
			s, _ := di.(binding.String).Get()
			obj.(*widget.Label).SetText(s)
		},
	)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() {
			e.Pause(false)
		}),
		widget.NewToolbarAction(theme.MediaPauseIcon(), func() {
			e.Pause(true)
		}),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), e.StepOnce),
	)

	w.programCounter = widget.NewLabel("PC: " + byteconv.U16toh(e.machine.ProgramCounter(), 3))
	w.index = widget.NewLabel("I: " + byteconv.U16toh(e.machine.Index(), 3))
	w.stackDepth = widget.NewLabel("Stack: " + strconv.Itoa(e.machine.StackDepth()))
	w.status = widget.NewLabel(e.machine.State().String())

	hbox := container.NewHBox(layout.NewSpacer(), w.programCounter, layout.NewSpacer(), w.index,
		layout.NewSpacer(), w.stackDepth, layout.NewSpacer(), w.status, layout.NewSpacer())

	box := container.NewBorder(toolbar, hbox, opcodeContent, w.registerList, imageContent)

	win.SetContent(box)
	win.Resize(fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale))
	win.SetFixedSize(true)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group

	g.Go(func() error {
		err := e.loop(loopCtx, w)
		if err != nil {
			e.logger.Error("Emulation stopped", log.Err(err))
			fyne.Do(func() {
				dialog.ShowError(err, win)
			})
		}
		return err
	})

	// Interrupts close the window, just as the user would.
	closed := make(chan struct{})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-closed:
		}
		return nil
	})

	win.ShowAndRun()
	close(closed)
	cancel()
	return g.Wait()
}
