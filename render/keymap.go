package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/loop"
)

// Keymap turns key edges into logical actions. A key can carry one action
// for its press edge and one for its release edge.
type Keymap struct {
	pressed  *intmap.Map[ebiten.Key, loop.Action]
	released *intmap.Map[ebiten.Key, loop.Action]
	keys     []ebiten.Key
}

func NewKeymap() *Keymap {
	return &Keymap{
		pressed:  intmap.New[ebiten.Key, loop.Action](8),
		released: intmap.New[ebiten.Key, loop.Action](2),
	}
}

// DefaultKeymap binds the arrow keys, space and escape.
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	k.BindPress(ebiten.KeyArrowUp, loop.ActionRotate)
	k.BindPress(ebiten.KeyArrowDown, loop.ActionSoftDropBegin)
	k.BindRelease(ebiten.KeyArrowDown, loop.ActionSoftDropEnd)
	k.BindPress(ebiten.KeyArrowLeft, loop.ActionMoveLeft)
	k.BindPress(ebiten.KeyArrowRight, loop.ActionMoveRight)
	k.BindPress(ebiten.KeySpace, loop.ActionHardDrop)
	k.BindPress(ebiten.KeyEscape, loop.ActionQuit)
	return k
}

func (k *Keymap) BindPress(key ebiten.Key, action loop.Action) {
	k.track(key)
	k.pressed.Put(key, action)
}

func (k *Keymap) BindRelease(key ebiten.Key, action loop.Action) {
	k.track(key)
	k.released.Put(key, action)
}

func (k *Keymap) track(key ebiten.Key) {
	_, bound := k.pressed.Get(key)
	if !bound {
		_, bound = k.released.Get(key)
	}
	if !bound {
		k.keys = append(k.keys, key)
	}
}

func (k *Keymap) Pressed(key ebiten.Key) (loop.Action, bool) {
	return k.pressed.Get(key)
}

func (k *Keymap) Released(key ebiten.Key) (loop.Action, bool) {
	return k.released.Get(key)
}

// Keys lists bound keys in binding order.
func (k *Keymap) Keys() []ebiten.Key {
	return k.keys
}

// Poll pushes the actions for this tick's key edges, in binding order.
func (k *Keymap) Poll(push func(loop.Action)) {
	for _, key := range k.keys {
		if inpututil.IsKeyJustPressed(key) {
			if action, ok := k.pressed.Get(key); ok {
				push(action)
			}
		}
		if inpututil.IsKeyJustReleased(key) {
			if action, ok := k.released.Get(key); ok {
				push(action)
			}
		}
	}
}
