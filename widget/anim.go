package widget

import "time"

// Fade tweens a node's opacity linearly.
type Fade struct {
	target   Node
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	done     bool
}

// Done reports whether the fade reached its target opacity.
func (f *Fade) Done() bool { return f.done }

// Target returns the animated node.
func (f *Fade) Target() Node { return f.target }

// step advances the fade by dt and applies the opacity.
func (f *Fade) step(dt time.Duration) {
	f.elapsed += dt
	k := 1.0
	if f.duration > 0 && f.elapsed < f.duration {
		k = float64(f.elapsed) / float64(f.duration)
	}
	f.target.Element().SetOpacity(f.from + (f.to-f.from)*k)
	f.done = k >= 1
}

// Fade starts tweening n from its current opacity to `to` over d. A
// running fade on n is replaced. A non-positive d applies the target on
// the next AdvanceAnimations.
func (t *Toolkit) Fade(n Node, to float64, d time.Duration) *Fade {
	t.cancelAnimations(n)
	f := &Fade{target: n, from: n.Element().Opacity(), to: min(max(to, 0), 1), duration: d}
	t.anims = append(t.anims, f)
	return f
}

// Animating returns the number of running animations.
func (t *Toolkit) Animating() int { return len(t.anims) }

func (t *Toolkit) stepAnimations(dt time.Duration) {
	running := t.anims[:0]
	for _, f := range t.anims {
		f.step(dt)
		if f.done {
			t.Post(Message{Kind: MsgAnimationDone, Target: f.target.ID()})
			continue
		}
		running = append(running, f)
	}
	clear(t.anims[len(running):])
	t.anims = running
}

func (t *Toolkit) cancelAnimations(n Node) {
	kept := t.anims[:0]
	for _, f := range t.anims {
		if f.target != n {
			kept = append(kept, f)
		}
	}
	clear(t.anims[len(kept):])
	t.anims = kept
}
